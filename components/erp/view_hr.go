package erp

import "strings"

// HRView filters the team roster by name.
type HRView struct {
	team  []TeamMember
	query string
}

func newHRView(team []TeamMember) *HRView {
	return &HRView{team: append([]TeamMember(nil), team...)}
}

func (v *HRView) Query() string         { return v.query }
func (v *HRView) SetQuery(query string) { v.query = query }

// Visible matches names only; roles and emails are never searched.
func (v *HRView) Visible() []TeamMember {
	needle := strings.ToLower(v.query)
	out := make([]TeamMember, 0, len(v.team))
	for _, member := range v.team {
		if strings.Contains(strings.ToLower(member.Name), needle) {
			out = append(out, member)
		}
	}
	return out
}
