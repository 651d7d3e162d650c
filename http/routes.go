package http

import (
	"net/http"
	"path"
	"strings"
)

// unmatchedRoute 未注册路由（404、405、路径规范化重定向）的指标标签
const unmatchedRoute = "unmatched"

// Routes 记录已注册路由模式的ServeMux
type Routes struct {
	*http.ServeMux
	patterns map[string]struct{}
}

// NewRoutes 创建路由表
func NewRoutes() *Routes {
	return &Routes{
		ServeMux: http.NewServeMux(),
		patterns: make(map[string]struct{}),
	}
}

func (m *Routes) Handle(pattern string, handler http.Handler) {
	m.patterns[pattern] = struct{}{}
	m.ServeMux.Handle(pattern, handler)
}

func (m *Routes) HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	m.patterns[pattern] = struct{}{}
	m.ServeMux.HandleFunc(pattern, handler)
}

// Label 返回请求命中的注册模式（去掉方法前缀），否则返回unmatched。
// 非规范路径会被ServeMux重定向，同样归为unmatched。
func (m *Routes) Label(r *http.Request) string {
	if m == nil || !canonicalPath(r.URL.Path) {
		return unmatchedRoute
	}
	_, pattern := m.Handler(r)
	if _, ok := m.patterns[pattern]; !ok {
		return unmatchedRoute
	}
	if i := strings.IndexByte(pattern, ' '); i >= 0 {
		pattern = pattern[i+1:]
	}
	return pattern
}

func canonicalPath(p string) bool {
	if p == "" || p[0] != '/' {
		return false
	}
	clean := path.Clean(p)
	if strings.HasSuffix(p, "/") && clean != "/" {
		clean += "/"
	}
	return clean == p
}
