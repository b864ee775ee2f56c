package tui

import tea "github.com/charmbracelet/bubbletea"

// App is the top-level Bubble Tea model that routes between pages.
type App struct {
	pages      map[string]Page
	order      []string
	activePage string
	width      int
	height     int
}

// NewApp creates an App over pages. The first page is the default.
func NewApp(pages ...Page) *App {
	a := &App{pages: make(map[string]Page, len(pages))}
	for _, p := range pages {
		if _, dup := a.pages[p.ID()]; dup {
			continue
		}
		a.pages[p.ID()] = p
		a.order = append(a.order, p.ID())
	}
	if len(a.order) > 0 {
		a.activePage = a.order[0]
	}
	return a
}

// ActivePage returns the id of the page receiving input.
func (a *App) ActivePage() string { return a.activePage }

func (a *App) Init() tea.Cmd {
	if p, ok := a.pages[a.activePage]; ok {
		return p.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = wsm.Width
		a.height = wsm.Height
	}

	p, ok := a.pages[a.activePage]
	if !ok {
		return a, nil
	}

	cmd, nav := p.Update(msg)
	if nav == nil {
		return a, cmd
	}
	next, exists := a.pages[nav.PageID]
	if !exists || nav.PageID == a.activePage {
		return a, cmd
	}
	a.activePage = nav.PageID
	// The new page has not seen the current window size yet.
	size := func() tea.Msg { return tea.WindowSizeMsg{Width: a.width, Height: a.height} }
	return a, tea.Batch(cmd, next.Init(), size)
}

func (a *App) View() string {
	if p, ok := a.pages[a.activePage]; ok {
		return p.View(a.width, a.height)
	}
	return "No active page"
}

// WorkspacePage adapts WorkspaceModel to the Page interface.
type WorkspacePage struct {
	Model *WorkspaceModel
}

// NewWorkspacePage wraps a WorkspaceModel as a Page.
func NewWorkspacePage(m *WorkspaceModel) *WorkspacePage {
	return &WorkspacePage{Model: m}
}

func (p *WorkspacePage) ID() string { return "workspace" }

func (p *WorkspacePage) Init() tea.Cmd { return p.Model.Init() }

func (p *WorkspacePage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	_, cmd := p.Model.Update(msg)
	return cmd, nil
}

func (p *WorkspacePage) View(width, height int) string {
	p.Model.width = width
	p.Model.height = height
	return p.Model.View()
}
