package controllerImp

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"webplanner/entities"
	"webplanner/pkg/auth/controller"
)

type authCtrl struct{ db *gorm.DB }

func NewAuthController(db *gorm.DB) controller.AuthController { return &authCtrl{db: db} }

func (h *authCtrl) DevLogin(c echo.Context) error {
	uid := c.QueryParam("uid")
	if uid == "" {
		uid = "U_DEV_DEFAULT"
	}
	if h.db != nil {
		u := entities.User{UserID: uid, PlanStatus: entities.PlanStatusFree}
		if err := h.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&u).Error; err != nil {
			log.Printf("[auth] user provisioning for %s failed: %v", uid, err)
		}
	}
	c.SetCookie(&http.Cookie{Name: "WP_UID", Value: uid, Path: "/"})
	return c.JSON(http.StatusOK, map[string]string{"uid": uid})
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	v := c.Get("uid")
	uid, _ := v.(string)
	return c.JSON(http.StatusOK, map[string]string{"uid": uid})
}
