package controller

import "github.com/labstack/echo/v4"

// AuthController exposes the development identity endpoints. Real
// authentication is expected to arrive as a reverse-proxy header.
type AuthController interface {
	DevLogin(c echo.Context) error
	WhoAmI(c echo.Context) error
}
