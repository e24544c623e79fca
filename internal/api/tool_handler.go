package api

import (
	"net/http"
	"settings-console/internal/service"
	"time"

	"github.com/gin-gonic/gin"
)

type ToolHandler struct {
	Flash *Flasher
}

func NewToolHandler(flash *Flasher) *ToolHandler {
	return &ToolHandler{Flash: flash}
}

func (h *ToolHandler) ShowDecode(c *gin.Context) {
	c.HTML(http.StatusOK, "decode_cert.html", page(c, h.Flash, "Decode certificate", gin.H{"Cert": "", "Error": "", "Info": nil}))
}

// DecodeCertificate 解析使用者貼上的憑證；JSON 請求回傳 JSON
func (h *ToolHandler) DecodeCertificate(c *gin.Context) {
	if c.ContentType() == gin.MIMEJSON {
		var req struct {
			CertContent string `json:"cert_content"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		info, err := service.DecodeCertificate(req.CertContent, time.Now())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": service.Message(err, "invalid certificate")})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": info})
		return
	}

	certText := c.PostForm("cert")
	info, err := service.DecodeCertificate(certText, time.Now())
	if err != nil {
		c.HTML(http.StatusUnprocessableEntity, "decode_cert.html", page(c, h.Flash, "Decode certificate", gin.H{
			"Cert":  certText,
			"Error": service.Message(err, "Could not parse certificate"),
			"Info":  nil,
		}))
		return
	}
	c.HTML(http.StatusOK, "decode_cert.html", page(c, h.Flash, "Decode certificate", gin.H{
		"Cert":  certText,
		"Error": "",
		"Info":  info,
	}))
}
