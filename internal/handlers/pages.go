package handlers

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
)

// The pages are static shells; the browser client fills them through the JSON API.
const pageShell = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>%s | Trip Planner</title></head>
<body data-page="%s"><main id="app"></main></body>
</html>
`

// Page serves a named HTML shell.
func Page(title, name string) gin.HandlerFunc {
	body := []byte(fmt.Sprintf(pageShell, html.EscapeString(title), html.EscapeString(name)))
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", body)
	}
}
