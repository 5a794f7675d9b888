package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkraev/aeroticket/internal/domain"
)

func errInvalidQuery(msg string) error {
	return errors.New(msg)
}

// pageQuery parses the 1-based page and limit parameters, defaulting to
// page 1 with 10 rows.
func pageQuery(c *gin.Context) (domain.Page, error) {
	page := domain.Page{Number: 1, Limit: domain.DefaultLimit}

	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, errInvalidQuery("page must be a positive integer")
		}
		page.Number = n
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			return page, errInvalidQuery("limit must be an integer between 1 and 100")
		}
		page.Limit = n
	}
	return page, nil
}
