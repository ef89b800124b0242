package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/domain/search"
)

type searchResponse struct {
	search.Page
	RawCount    int    `json:"rawCount"`
	UniqueCount int    `json:"uniqueCount"`
	Skipped     int    `json:"skipped"`
	Provider    string `json:"provider"`
	Notice      string `json:"notice"`
}

type searchFailure struct {
	errorBody
	Items []domain.JobPosting `json:"items"`
}

type stateResponse struct {
	Query     string               `json:"query"`
	Location  string               `json:"location"`
	Filters   domain.SearchFilters `json:"filters"`
	Searched  bool                 `json:"searched"`
	UpdatedAt time.Time            `json:"updatedAt"`
	search.Page
}

type stateUpdate struct {
	Query    *string               `json:"query"`
	Location *string               `json:"location"`
	Filters  *domain.SearchFilters `json:"filters"`
}

// SearchJobs is GET /api/jobs/search?q&l&type&date&remote&experience&sort&page&pageSize.
// The deduplicated result set is stored as the caller's search state.
func (h *Handler) SearchJobs(c *gin.Context) {
	opts, ok := viewOptions(c)
	if !ok {
		return
	}
	query := strings.TrimSpace(c.Query("q"))
	location := strings.TrimSpace(c.Query("l"))
	filters := filtersFromQuery(c)
	opts.Experience = filters.ExperienceLevel

	res, err := h.searcher.Search(c.Request.Context(), query, location, filters)
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(statusFor(err), searchFailure{
			errorBody: errorBody{Error: err.Error(), Notice: search.Notice(err)},
			Items:     []domain.JobPosting{},
		})
		return
	}

	st := search.State{
		Query:     query,
		Location:  location,
		Filters:   filters,
		Results:   res.Postings,
		Searched:  true,
		UpdatedAt: res.FetchedAt,
	}
	if err := h.states.Save(c.Request.Context(), currentUser(c).String(), st); err != nil {
		h.logger.Warn("persist search state failed", "err", err)
	}

	c.JSON(http.StatusOK, searchResponse{
		Page:        search.View(res.Postings, opts),
		RawCount:    res.RawCount,
		UniqueCount: res.UniqueCount,
		Skipped:     res.Skipped,
		Provider:    res.Provider,
		Notice:      res.Notice(),
	})
}

// GetSearchState is GET /api/search/state?sort&page&pageSize
func (h *Handler) GetSearchState(c *gin.Context) {
	opts, ok := viewOptions(c)
	if !ok {
		return
	}

	st, _, err := h.states.Load(c.Request.Context(), currentUser(c).String())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, renderState(st, opts))
}

// PutSearchState is PUT /api/search/state. Changing a filter value after a
// search schedules a debounced re-query; the response reports whether one was
// scheduled.
func (h *Handler) PutSearchState(c *gin.Context) {
	var req stateUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	session := currentUser(c).String()

	st, _, err := h.states.Load(ctx, session)
	if err != nil {
		h.fail(c, err)
		return
	}

	if req.Query != nil {
		st.Query = strings.TrimSpace(*req.Query)
	}
	if req.Location != nil {
		st.Location = strings.TrimSpace(*req.Location)
	}
	prev := st.Filters
	if req.Filters != nil {
		st.Filters = search.NormalizeFilters(*req.Filters)
	}

	if err := h.states.Save(ctx, session, st); err != nil {
		h.fail(c, err)
		return
	}

	// query and location edits wait for an explicit search
	scheduled := false
	if h.requery != nil && st.Filters != prev {
		scheduled = h.requery.Notify(session, st)
	}

	c.JSON(http.StatusOK, gin.H{
		"requery": scheduled,
		"state":   renderState(st, search.ViewOptions{}),
	})
}

func renderState(st search.State, opts search.ViewOptions) stateResponse {
	opts.Experience = st.Filters.ExperienceLevel
	return stateResponse{
		Query:     st.Query,
		Location:  st.Location,
		Filters:   st.Filters,
		Searched:  st.Searched,
		UpdatedAt: st.UpdatedAt,
		Page:      search.View(st.Results, opts),
	}
}

func viewOptions(c *gin.Context) (search.ViewOptions, bool) {
	opts := search.ViewOptions{Sort: search.ParseSortKey(c.Query("sort"))}

	for key, dst := range map[string]*int{"page": &opts.Pages, "pageSize": &opts.PageSize} {
		v := c.Query(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			badRequest(c, key+" must be a positive integer")
			return opts, false
		}
		if key == "pageSize" && n > search.MaxPageSize {
			badRequest(c, "pageSize must be at most "+strconv.Itoa(search.MaxPageSize))
			return opts, false
		}
		*dst = n
	}
	return opts, true
}

func filtersFromQuery(c *gin.Context) domain.SearchFilters {
	remote, _ := strconv.ParseBool(c.Query("remote"))
	return search.NormalizeFilters(domain.SearchFilters{
		Type:            domain.JobType(c.Query("type")),
		DatePosted:      domain.DatePosted(c.Query("date")),
		Remote:          remote,
		ExperienceLevel: domain.ExperienceLevel(c.Query("experience")),
	})
}
