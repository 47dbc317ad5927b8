package middleware

import (
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

const CtxAdvancedResults = "advancedResults"

// AdvancedResults runs the list query described by the request's query
// string and stores the result for the handler to write.
func AdvancedResults(r application.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := r.Run(c.Request.Context(), c.Request.URL.Query())
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(CtxAdvancedResults, res)
		c.Next()
	}
}

// ScopeQuery narrows a nested listing to its parent: every filter key is
// replaced by field=<path param>; select, sort, page and limit are kept.
func ScopeQuery(field, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := c.Request.URL.Query()
		scoped := url.Values{}
		for k, v := range in {
			if query.IsControlKey(k) {
				scoped[k] = v
			}
		}
		scoped.Set(field, c.Param(param))
		c.Request.URL.RawQuery = scoped.Encode()
		c.Next()
	}
}

// Results returns what AdvancedResults stored.
func Results(c *gin.Context) (*application.Result, bool) {
	return Loaded[*application.Result](c, CtxAdvancedResults)
}
