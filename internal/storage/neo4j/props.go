package neo4j

import (
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobkit/internal/domain"
)

// savedJobProps flattens a card into node properties. Optional values are
// passed as nil so Neo4j removes the property instead of storing zero values.
func savedJobProps(j domain.SavedJob) map[string]any {
	props := map[string]any{
		"id":            j.ID.String(),
		"userId":        j.UserID.String(),
		"role":          j.Role,
		"company":       j.Company,
		"status":        string(j.Status),
		"salary":        j.Salary,
		"notes":         j.Notes,
		"jdUrl":         j.JDURL,
		"jdText":        j.JDText,
		"recruiterName": j.RecruiterName,
		"resumeVersion": j.ResumeVersion,
		"checklistDone": nonNil(j.ChecklistDone),
		"followUpDue":   j.FollowUpDue,
		"createdAt":     j.CreatedAt.UTC(),
		"updatedAt":     j.UpdatedAt.UTC(),
		"appliedDate":   nil,
		"aiScore":       nil,
	}
	if j.AppliedDate != nil {
		props["appliedDate"] = j.AppliedDate.UTC()
	}
	if j.AIScore != nil {
		props["aiScore"] = *j.AIScore
	}
	return props
}

func savedJobFromNode(node neo4j.Node) (domain.SavedJob, bool) {
	p := node.Props

	id, err := uuid.Parse(propString(p, "id"))
	if err != nil {
		return domain.SavedJob{}, false
	}
	userID, err := uuid.Parse(propString(p, "userId"))
	if err != nil {
		return domain.SavedJob{}, false
	}

	j := domain.SavedJob{
		ID:            id,
		UserID:        userID,
		Role:          propString(p, "role"),
		Company:       propString(p, "company"),
		Status:        domain.Status(propString(p, "status")),
		Salary:        propString(p, "salary"),
		Notes:         propString(p, "notes"),
		JDURL:         propString(p, "jdUrl"),
		JDText:        propString(p, "jdText"),
		RecruiterName: propString(p, "recruiterName"),
		ResumeVersion: propString(p, "resumeVersion"),
		ChecklistDone: propStrings(p, "checklistDone"),
		FollowUpDue:   propBool(p, "followUpDue"),
		CreatedAt:     propTime(p, "createdAt"),
		UpdatedAt:     propTime(p, "updatedAt"),
	}
	if t := propTime(p, "appliedDate"); !t.IsZero() {
		j.AppliedDate = &t
	}
	if v, ok := p["aiScore"].(float64); ok {
		j.AIScore = &v
	}
	return j, true
}

func userFromNode(node neo4j.Node) (domain.User, bool) {
	p := node.Props
	id, err := uuid.Parse(propString(p, "id"))
	if err != nil {
		return domain.User{}, false
	}
	return domain.User{
		ID:           id,
		Name:         propString(p, "name"),
		Email:        propString(p, "email"),
		PasswordHash: propString(p, "passwordHash"),
		CreatedAt:    propTime(p, "createdAt"),
	}, true
}

func propString(p map[string]any, key string) string {
	s, _ := p[key].(string)
	return s
}

func propBool(p map[string]any, key string) bool {
	b, _ := p[key].(bool)
	return b
}

func propStrings(p map[string]any, key string) []string {
	out := make([]string, 0)
	list, _ := p[key].([]any)
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func propTime(p map[string]any, key string) time.Time {
	switch v := p[key].(type) {
	case time.Time:
		return v.UTC()
	case neo4j.LocalDateTime:
		return v.Time().UTC()
	default:
		return time.Time{}
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
