package runtime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewHttpHandler exposes def's entrypoint on g. Only POST entrypoints are
// supported; anything else is logged and skipped.
func NewHttpHandler(def *WorkflowNode, runner *Runner, g *gin.Engine) {
	method, path := def.EntrypointRoute()

	switch method {
	case http.MethodPost:
		slog.Info("Registering HTTP entrypoint", "node", def.ID, "method", method, "path", path)
		g.POST(path, handleRequest(def, runner))
	default:
		slog.Warn("Entrypoint method is not supported", "node", def.ID, "method", method)
	}
}

type executeRequest struct {
	Items []Item `json:"items"`
}

type executeResponse struct {
	Items []Item `json:"items"`
}

var wrongBodyFormatRes = gin.H{"message": "Wrong request body format"}

func handleRequest(def *WorkflowNode, runner *Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := extractItems(c.Request.Body)
		if err != nil {
			slog.Warn("Rejecting request body", "node", def.ID, "error", err)
			c.JSON(http.StatusBadRequest, wrongBodyFormatRes)
			return
		}

		output, err := runner.Run(c.Request.Context(), def, items)
		if err != nil {
			slog.Error("Node execution failed",
				"node", def.ID,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", err.Error())

			res := gin.H{"message": "Error in node execution: " + err.Error()}
			if idx, ok := ItemIndexOf(err); ok {
				res["itemIndex"] = idx
			}
			c.JSON(http.StatusInternalServerError, res)
			return
		}

		if output == nil {
			output = []Item{}
		}
		c.JSON(http.StatusOK, executeResponse{Items: output})
	}
}

// extractItems accepts {"items":[{"json":{...}}]} or a bare array of
// payload objects. An empty body yields one empty record.
func extractItems(body io.Reader) ([]Item, error) {
	if body == nil {
		return []Item{NewItem(nil)}, nil
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []Item{NewItem(nil)}, nil
	}

	switch raw[0] {
	case '[':
		var payloads []map[string]any
		if err := json.Unmarshal(raw, &payloads); err != nil {
			return nil, err
		}
		items := make([]Item, len(payloads))
		for i, p := range payloads {
			items[i] = NewItem(p)
		}
		return items, nil
	case '{':
		var req executeRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return nil, err
		}
		if req.Items == nil {
			return nil, fmt.Errorf("missing items")
		}
		return req.Items, nil
	default:
		return nil, fmt.Errorf("unexpected body start %q", raw[0])
	}
}
