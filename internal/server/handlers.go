package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dorkyrobot/yuri/internal/paths"
	"github.com/dorkyrobot/yuri/internal/uris"
)

type pathResult struct {
	Path string `json:"path"`
}

type uriResult struct {
	URI string `json:"uri"`
}

type escapeResult struct {
	Escaped string `json:"escaped"`
}

// ParsedURI is the component breakdown returned by /v1/parse.
type ParsedURI struct {
	URI      string              `json:"uri"`
	Scheme   string              `json:"scheme,omitempty"`
	Opaque   string              `json:"opaque,omitempty"`
	User     string              `json:"user,omitempty"`
	Host     string              `json:"host,omitempty"`
	Port     string              `json:"port,omitempty"`
	Path     string              `json:"path,omitempty"`
	Query    string              `json:"query,omitempty"`
	Params   map[string][]string `json:"params,omitempty"`
	Fragment string              `json:"fragment,omitempty"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) clean(c *gin.Context) {
	p, ok := c.GetQuery("path")
	if !ok {
		respondError(c, missing("path"))
		return
	}
	respondSuccess(c, pathResult{Path: paths.Clean(p)})
}

func (s *Server) join(c *gin.Context) {
	respondSuccess(c, pathResult{Path: paths.Join(c.QueryArray("e")...)})
}

func (s *Server) appendURI(c *gin.Context) {
	base, ok := c.GetQuery("base")
	if !ok || base == "" {
		respondError(c, missing("base"))
		return
	}
	u, err := uris.AppendString(base, c.QueryArray("e")...)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, uriResult{URI: u})
}

func (s *Server) escape(c *gin.Context) {
	in, ok := c.GetQuery("s")
	if !ok {
		respondError(c, missing("s"))
		return
	}
	out, err := uris.PathEscape(in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, escapeResult{Escaped: out})
}

func (s *Server) parse(c *gin.Context) {
	raw, ok := c.GetQuery("uri")
	if !ok || raw == "" {
		respondError(c, missing("uri"))
		return
	}
	u, err := uris.ParseOrNil(raw)
	if err != nil {
		respondError(c, err)
		return
	}

	p := ParsedURI{
		URI:      u.String(),
		Scheme:   u.Scheme,
		Opaque:   u.Opaque,
		Host:     u.Hostname(),
		Port:     u.Port(),
		Path:     u.EscapedPath(),
		Query:    u.RawQuery,
		Fragment: u.EscapedFragment(),
	}
	if u.User != nil {
		p.User = u.User.Username()
	}
	if u.RawQuery != "" {
		p.Params = u.Query()
	}
	respondSuccess(c, p)
}
