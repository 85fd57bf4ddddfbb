package dashboard

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"botdash/internal/listquery"
	"botdash/internal/metrics"
	"botdash/internal/navigation"
	"botdash/pkg/models"
	"github.com/gin-gonic/gin"
)

type anchors struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

type listResponse[T any] struct {
	Data    []T              `json:"data"`
	Links   navigation.Links `json:"links"`
	State   string           `json:"state"`
	Anchors *anchors         `json:"anchors,omitempty"`
}

func listRoute[F any, T models.Keyed](s *Server, path string, schema *listquery.Schema[F], fetch func(context.Context, *gin.Context, url.Values) (*models.Page[T], error)) {
	s.engine.GET(path, func(c *gin.Context) {
		serveList(s, c, schema, fetch)
	})
}

// serveList runs one list request. A query that fails validation redirects
// to the bare path, which is the unfiltered first page.
func serveList[F any, T models.Keyed](s *Server, c *gin.Context, schema *listquery.Schema[F], fetch func(context.Context, *gin.Context, url.Values) (*models.Page[T], error)) {
	start := time.Now()
	resource := schema.Resource()
	current := navigation.FromURL(c.Request.URL)
	state := navigation.StateOf(current)
	log := s.entry(c, resource).WithField("state", state.String())

	q, err := schema.ParseValues(c.Request.URL.Query())
	if err != nil {
		log.WithError(err).Info("invalid list query, redirecting to first page")
		s.metrics.Observe(resource, metrics.OutcomeRedirect, time.Since(start))
		c.Redirect(http.StatusFound, current.Bare().Href())
		return
	}

	params, err := q.Params()
	if err != nil {
		log.WithError(err).Error("encode request parameters")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	page, err := fetch(c.Request.Context(), c, params)
	if err != nil {
		log.WithError(err).Error("remote list failed")
		s.metrics.Observe(resource, metrics.OutcomeUpstreamError, time.Since(start))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	resp := listResponse[T]{
		Data:  page.Data,
		Links: navigation.Compute(current, navigation.CursorsOf(page)),
		State: state.String(),
	}
	if resp.Data == nil {
		resp.Data = []T{}
	}
	if first, last := navigation.Anchors(page.Data); first != nil {
		resp.Anchors = &anchors{First: first.String(), Last: last.String()}
	}

	log.WithField("rows", len(resp.Data)).Debug("served list page")
	s.metrics.Observe(resource, metrics.OutcomeOK, time.Since(start))
	c.JSON(http.StatusOK, resp)
}
