package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ExportObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"lastModified,omitempty"`
}

func (h *Handler) exportData(c *gin.Context) {
	if h.exports == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}

	location, err := h.exports.Export(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "export created",
		"location": location,
	})
}

func (h *Handler) listExports(c *gin.Context) {
	if h.exports == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}

	objects, err := h.exports.ListExports(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]ExportObjectResponse, len(objects))
	for i, obj := range objects {
		resp[i] = ExportObjectResponse{
			Key:  obj.Key,
			Size: obj.Size,
		}
		if obj.LastModified != nil && !obj.LastModified.IsZero() {
			v := obj.LastModified.Format(time.RFC3339)
			resp[i].LastModified = &v
		}
	}
	c.JSON(http.StatusOK, resp)
}
