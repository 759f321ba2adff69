package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/skyairrace/records-api/internal/logic"
	"github.com/skyairrace/records-api/internal/models"
)

// paramError is a rejected query parameter.
type paramError struct {
	status int
	msg    string
}

func (e *paramError) Error() string { return e.msg }

func badRequest(format string, args ...interface{}) error {
	return &paramError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

// recordQuery holds the raw facet parameters shared by the ranking and
// player record endpoints.
type recordQuery struct {
	Category string   `query:"category"`
	Course   string   `query:"course"`
	Versions []string `query:"versions"`
	Controls []string `query:"controls" validate:"dive,oneof=タッチ タッチ(箒あり) コントローラー コントローラー(箒あり)"`
	Approval string   `query:"approval" validate:"omitempty,oneof=all approved"`
	Mode     string   `query:"mode" validate:"omitempty,oneof=all best"`
	Sort     string   `query:"sort" validate:"omitempty,oneof=player time record_date submitted_at"`
	Order    string   `query:"order" validate:"omitempty,oneof=asc desc"`
	Toggle   string   `query:"toggle" validate:"omitempty,oneof=player time record_date submitted_at"`
}

type challengeQuery struct {
	Rank     string `query:"rank"`
	Approval string `query:"approval" validate:"omitempty,oneof=all approved"`
}

type listQuery struct {
	Query string `query:"q" validate:"max=100"`
	Limit int    `query:"limit" validate:"min=0,max=50"`
}

// queryTagName reports validation failures by query parameter name.
func queryTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
	if name == "" {
		return fld.Name
	}
	return name
}

func (h *Handler) validate(v interface{}) error {
	err := h.validator.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		return badRequest("Invalid value for %s", field)
	}
	return badRequest("Invalid query")
}

// parseSet reads a comma separated multi-select parameter. An absent
// parameter is nil; a present one with no values is the empty set.
func parseSet(q url.Values, name string) []string {
	if !q.Has(name) {
		return nil
	}
	out := []string{}
	for _, raw := range q[name] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func parseIntParam(q url.Values, name string, fallback int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest("Invalid value for %s", name)
	}
	return n, nil
}

func (h *Handler) parseRecordQuery(q url.Values) (recordQuery, error) {
	in := recordQuery{
		Category: q.Get("category"),
		Course:   q.Get("course"),
		Versions: parseSet(q, "versions"),
		Controls: parseSet(q, "controls"),
		Approval: q.Get("approval"),
		Mode:     q.Get("mode"),
		Sort:     q.Get("sort"),
		Order:    q.Get("order"),
		Toggle:   q.Get("toggle"),
	}
	return in, h.validate(in)
}

// applyFacets layers the facet parameters over f.
func applyFacets(f logic.Filter, in recordQuery) logic.Filter {
	if in.Versions != nil {
		f = f.WithVersions(in.Versions...)
	}
	if in.Controls != nil {
		f = f.WithControls(in.Controls...)
	}
	if in.Approval != "" {
		f = f.WithApproval(models.ApprovalFilter(in.Approval))
	}
	return f
}

// rankingSelection builds the ranking selection from the query, starting
// from the page defaults. Choosing a category without a course selects
// that category's default course.
func (h *Handler) rankingSelection(q url.Values, ds *logic.Dataset) (logic.Selection, error) {
	in, err := h.parseRecordQuery(q)
	if err != nil {
		return logic.Selection{}, err
	}

	sel := logic.DefaultSelection(ds)
	if q.Has("category") {
		sel.Filter = sel.Filter.WithScope(in.Category, logic.DefaultCourseFor(ds, in.Category))
	}
	if q.Has("course") {
		sel.Filter = sel.Filter.WithScope(sel.Filter.Category, in.Course)
	}
	sel.Filter = applyFacets(sel.Filter, in)
	if in.Mode != "" {
		sel.Mode = models.RecordMode(in.Mode)
	}
	if in.Sort != "" {
		sel.Sort = logic.SortState{Key: models.SortKey(in.Sort), Order: models.Ascending}
	}
	if in.Order != "" {
		sel.Sort.Order = models.SortOrder(in.Order)
	}
	if in.Toggle != "" {
		sel.Sort = sel.Sort.Toggle(models.SortKey(in.Toggle))
	}
	return sel, nil
}

// playerFilter builds the player submissions filter. Category and course
// narrow the table only when given.
func (h *Handler) playerFilter(q url.Values, ds *logic.Dataset) (logic.Filter, error) {
	in, err := h.parseRecordQuery(q)
	if err != nil {
		return logic.Filter{}, err
	}
	f := logic.PlayerFilter(ds).WithScope(in.Category, in.Course)
	return applyFacets(f, in), nil
}

func (h *Handler) challengeFilter(q url.Values, name string) (logic.ChallengeFilter, error) {
	in := challengeQuery{Rank: q.Get("rank"), Approval: q.Get("approval")}
	if err := h.validate(in); err != nil {
		return logic.ChallengeFilter{}, err
	}
	f := logic.ChallengeFilter{Challenge: name, MinRank: in.Rank, Approval: models.ApprovalAll}
	if in.Approval != "" {
		f.Approval = models.ApprovalFilter(in.Approval)
	}
	return f, nil
}
