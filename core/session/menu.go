package session

// MenuEntry is one navigation entry of the console sidebar.
type MenuEntry struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

// allMenuEntries is the full ordered navigation list; Menu filters it per role.
var allMenuEntries = []MenuEntry{
	{Label: "Dashboard", Path: PathDashboard, Icon: "layout-dashboard"},
	{Label: "Trainings", Path: PathTrainings, Icon: "layout-dashboard"},
	{Label: "Users", Path: PathUsers, Icon: "user"},
	{Label: "Participants", Path: PathParticipants, Icon: "user"},
	{Label: "Statistics", Path: PathStatistics, Icon: "chart-bar"},
	{Label: "Profile", Path: PathProfile, Icon: "user-round"},
}

// Menu returns the navigation entries visible to the session, in display
// order. It reads the same capability table as Authorize. An absent or
// still-loading session sees no entries.
func Menu(st State) []MenuEntry {
	if st.Status == LoadStatusLoading || !st.Authenticated {
		return nil
	}
	var entries []MenuEntry
	for _, e := range allMenuEntries {
		if CanAccess(st.Role, e.Path) {
			entries = append(entries, e)
		}
	}
	return entries
}
