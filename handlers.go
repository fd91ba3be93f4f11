package mdblog

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/mdblog/markdown"
)

type saveFiles struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

type saveResponse struct {
	Success  bool      `json:"success"`
	Filename string    `json:"filename"`
	Files    saveFiles `json:"files"`
}

type loadResponse struct {
	Content string `json:"content"`
}

type previewRequest struct {
	Markdown string `json:"markdown"`
}

type previewResponse struct {
	HTML string `json:"html"`
}

func (a *App) handleEditor(c echo.Context) error {
	return Render(c, a.Views.Editor(CsrfToken(c)))
}

func (a *App) handleBlogIndex(c echo.Context) error {
	posts, err := a.Store.ListPosts()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Index(posts, true))
}

func (a *App) handlePost(c echo.Context) error {
	post, err := a.Store.GetPost(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidName) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	return Render(c, a.Views.Post(post, markdown.Markdown(post.Body)))
}

func (a *App) handleListPosts(c echo.Context) error {
	posts, err := a.Store.ListPosts()
	if err != nil {
		return err
	}
	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Summary())
	}
	return c.JSON(http.StatusOK, out)
}

func (a *App) handleLoadPost(c echo.Context) error {
	content, err := a.Store.LoadMarkdown(c.Param("filename"))
	switch {
	case errors.Is(err, ErrNotFound):
		return jsonError(c, http.StatusNotFound, "Post not found")
	case errors.Is(err, ErrInvalidName):
		return jsonError(c, http.StatusBadRequest, "Invalid filename")
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, loadResponse{Content: content})
}

func (a *App) handleSavePost(c echo.Context) error {
	var req SaveRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	res, err := a.Store.SavePost(req)
	switch {
	case errors.Is(err, ErrNameRequired):
		return jsonError(c, http.StatusBadRequest, "Filename required")
	case errors.Is(err, ErrInvalidName):
		return jsonError(c, http.StatusBadRequest, "Invalid filename")
	case err != nil:
		return err
	}
	c.Logger().Infof("saved %s", res.Filename)
	return c.JSON(http.StatusOK, saveResponse{
		Success:  true,
		Filename: res.Filename,
		Files: saveFiles{
			Markdown: res.MarkdownPath,
			HTML:     res.HTMLPath,
		},
	})
}

func (a *App) handlePreview(c echo.Context) error {
	var req previewRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	_, body, err := markdown.SplitFrontMatter(req.Markdown)
	if err != nil {
		body = req.Markdown
	}
	out, err := markdown.Render(body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, previewResponse{HTML: out})
}

func (a *App) handleDeletePost(c echo.Context) error {
	filename := c.Param("filename")
	err := a.Store.DeletePost(filename)
	switch {
	case errors.Is(err, ErrNotFound):
		return jsonError(c, http.StatusNotFound, "Post not found")
	case errors.Is(err, ErrInvalidName):
		return jsonError(c, http.StatusBadRequest, "Invalid filename")
	case err != nil:
		return err
	}
	c.Logger().Infof("deleted %s", filename)
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Store.ListPosts()
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeSitemap(c.Response(), a.Config.URL, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Store.ListPosts()
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeRSS(c.Response(), a.Config, posts)
}

// handleRobots keeps crawlers out of the editor and API.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /blog/\nDisallow: /api/\nDisallow: /login/\n\nSitemap: %s\n", strings.TrimSuffix(a.Config.URL, "/")+"/sitemap.xml")
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	he, ok := err.(*echo.HTTPError)
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		msg := http.StatusText(code)
		if ok && code < 500 {
			msg = fmt.Sprint(he.Message)
		} else if code >= 500 {
			msg = err.Error()
		}
		_ = jsonError(c, code, msg)
		return
	}
	switch {
	case code == http.StatusNotFound:
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	case code >= 500:
		_ = RenderStatus(c, code, a.Views.ServerError())
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
	}
}
