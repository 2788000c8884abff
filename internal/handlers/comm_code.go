package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jiheejiheekim/monarch-Mobile/internal/services"

	"github.com/gin-gonic/gin"
)

type CommCodeHandler struct {
	commCodeService *services.CommCodeService
}

func NewCommCodeHandler(s *services.CommCodeService) *CommCodeHandler {
	return &CommCodeHandler{commCodeService: s}
}

// GetCommCodes handles GET /api/comm-code?codeGrp=&mUsiteNo=
func (h *CommCodeHandler) GetCommCodes(c *gin.Context) {
	codeGrp := c.Query("codeGrp")
	usiteNo, err := strconv.ParseInt(c.Query("mUsiteNo"), 10, 64)
	if codeGrp == "" || err != nil {
		respondInvalidRequest(c, "codeGrp and a numeric mUsiteNo are required")
		return
	}

	codes, err := h.commCodeService.GetCommCodes(c.Request.Context(), codeGrp, usiteNo)
	switch {
	case errors.Is(err, services.ErrInvalidCodeQuery):
		respondInvalidRequest(c, err.Error())
		return
	case err != nil:
		respondServerError(c, "Failed to load common codes")
		return
	}

	c.JSON(http.StatusOK, codes)
}
