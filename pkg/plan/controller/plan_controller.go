package controller

import "github.com/labstack/echo/v4"

type PlanController interface {
	Generate(c echo.Context) error
	Refine(c echo.Context) error
	ListVersions(c echo.Context) error
	ImplementationPrompts(c echo.Context) error
	OneShot(c echo.Context) error
	RefineOneShot(c echo.Context) error
	Export(c echo.Context) error
}
