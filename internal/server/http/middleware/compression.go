package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// maxRequestBody bounds a decompressed request body.
const maxRequestBody = 1 << 20

// Compression gzips responses, except the metrics endpoint whose scraper
// negotiates its own encoding, and inflates gzip request bodies.
func Compression(metricsPath string) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		DecompressRequest(),
		ginGzip.Gzip(ginGzip.DefaultCompression, ginGzip.WithExcludedPaths([]string{metricsPath})),
	}
}

// DecompressRequest inflates gzip request bodies. Other encodings are refused.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := strings.ToLower(strings.TrimSpace(c.GetHeader("Content-Encoding")))
		switch encoding {
		case "", "identity":
			c.Next()
			return
		case "gzip":
		default:
			c.AbortWithStatus(http.StatusUnsupportedMediaType)
			return
		}

		original := c.Request.Body
		reader, err := gzip.NewReader(original)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer reader.Close()
		defer original.Close()

		c.Request.Body = http.MaxBytesReader(c.Writer, io.NopCloser(reader), maxRequestBody)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
