package httpserver

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

func uintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

// optionalInt reads an integer query parameter; absent means 0.
func optionalInt(c echo.Context, name string) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

type messageResponse struct {
	Message string `json:"message"`
}
