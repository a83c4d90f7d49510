package erp

// LogoutAcknowledgement is the message returned by the placeholder logout.
const LogoutAcknowledgement = "Logged out (demo)"

// ShellState is the navigation shell state shared by every view of a session.
type ShellState struct {
	SidebarCollapsed    bool `json:"sidebar_collapsed"`
	QuickActionsVisible bool `json:"quick_actions_visible"`
	CurrentUser         User `json:"current_user"`
}

// ToggleCollapsed flips the sidebar between full and icon-only width.
func (s *ShellState) ToggleCollapsed() { s.SidebarCollapsed = !s.SidebarCollapsed }

func (s *ShellState) OpenQuickActions()  { s.QuickActionsVisible = true }
func (s *ShellState) CloseQuickActions() { s.QuickActionsVisible = false }

// Logout does not end the session. It only acknowledges the request.
func (s *ShellState) Logout() string { return LogoutAcknowledgement }

// Greeting returns the top bar welcome line.
func (s *ShellState) Greeting() string {
	return "Welcome back, " + s.CurrentUser.FirstName()
}
