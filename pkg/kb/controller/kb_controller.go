package controller

import "github.com/labstack/echo/v4"

// KBController manages the reference-material corpus consulted during plan
// synthesis.
type KBController interface {
	IngestText(c echo.Context) error
	IngestURL(c echo.Context) error
	ListDocs(c echo.Context) error
	Search(c echo.Context) error
}
