package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/cook/internal/auth"
	"github.com/desertthunder/cook/internal/browse"
	"github.com/desertthunder/cook/internal/favorites"
	"github.com/desertthunder/cook/internal/formatter"
	"github.com/desertthunder/cook/internal/models"
	"github.com/desertthunder/cook/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	AuthView ViewState = iota
	CategoryView
	RecipeListView
	DetailView
	FavoritesView
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	auth      *auth.Flow
	browser   *browse.Browser
	favorites *favorites.Flow
	open      func(string) error

	width        int
	height       int
	form         authForm
	categoryList list.Model
	recipeList   list.Model
	favoriteList list.Model
	detail       *models.RecipeDetail
	detailFrom   ViewState
	viewport     viewport.Model
	spinner      spinner.Model
	loading      bool
	pending      int
	status       *favorites.Notification
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The auth flow should already have been restored; an authenticated flow starts on the categories.
func NewModel(ctx context.Context, flow *auth.Flow, browser *browse.Browser, favs *favorites.Flow) *Model {
	m := &Model{
		ctx:          ctx,
		view:         AuthView,
		auth:         flow,
		browser:      browser,
		favorites:    favs,
		open:         shared.OpenBrowser,
		form:         newAuthForm(flow.Mode()),
		categoryList: newList("Categories"),
		recipeList:   newList("Recipes"),
		favoriteList: newList("Favorites"),
		viewport:     viewport.New(0, 0),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:         help.New(),
		keys:         newKeyMap(),
	}
	if flow.Authenticated() {
		m.view = CategoryView
		m.loading = true
	}
	return m
}

func newList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	return l
}

// Init starts the spinner and, when already signed in, loads the categories.
func (m *Model) Init() tea.Cmd {
	if m.view == AuthView {
		return tea.Batch(textinput.Blink, m.spinner.Tick)
	}
	return tea.Batch(m.fetchCategories(), m.spinner.Tick)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQuit) {
			return m, tea.Quit
		}
		switch m.view {
		case AuthView:
			return m.handleAuthKeys(msg)
		case CategoryView:
			return m.handleCategoryKeys(msg)
		case RecipeListView:
			return m.handleRecipeListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case FavoritesView:
			return m.handleFavoritesKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgAuthenticated:
		m.loading = false
		if err := errOf(msg.data); err != nil {
			return m, nil
		}
		m.status = nil
		m.view = CategoryView
		m.loading = true
		return m, m.fetchCategories()

	case MsgLoggedOut:
		if err := errOf(msg.data); err != nil {
			m.notify(favorites.Notification{Kind: favorites.KindError, Message: err.Error()})
			return m, nil
		}
		m.view = AuthView
		m.form = newAuthForm(auth.ModeLogin)
		m.detail = nil
		m.notify(favorites.Notification{Kind: favorites.KindInfo, Message: "Logged out"})
		return m, m.favoriteList.SetItems(nil)

	case MsgCategoriesFetched:
		m.loading = false
		data := msg.data.(categoriesPayload)
		if data.err != nil {
			m.notify(failure("Could not load categories", data.err))
			return m, nil
		}
		return m, m.categoryList.SetItems(categoryItems(data.categories))

	case MsgRecipesFetched:
		m.loading = false
		data := msg.data.(recipesPayload)
		if data.err != nil {
			m.notify(failure("Could not load recipes", data.err))
			return m, nil
		}
		m.recipeList.Title = fmt.Sprintf("Recipes in '%s'", data.category)
		m.recipeList.ResetSelected()
		m.view = RecipeListView
		return m, m.recipeList.SetItems(recipeItems(data.recipes, m.favorites))

	case MsgDetailFetched:
		m.loading = false
		data := msg.data.(detailPayload)
		if data.err != nil {
			m.notify(failure("Could not load recipe", data.err))
			return m, nil
		}
		m.detailFrom = m.view
		m.detail = data.detail
		m.viewport.SetContent(string(formatter.RecipeToText(data.detail)))
		m.viewport.GotoTop()
		m.view = DetailView
		return m, nil

	case MsgFavoriteToggled:
		m.pending--
		data := msg.data.(togglePayload)
		if data.err != nil {
			m.notify(favorites.NotificationFor(data.err))
		} else {
			m.notify(data.result.Notification())
		}
		return m, m.refreshFavorites()

	case MsgFavoriteRemoved:
		m.pending--
		data := msg.data.(removePayload)
		if data.err != nil {
			m.notify(favorites.NotificationFor(data.err))
			return m, nil
		}
		m.notify(favorites.Notification{Kind: favorites.KindSuccess, Message: favorites.MessageRemoved})
		return m, m.refreshFavorites()

	case MsgFavoritesFetched:
		m.loading = false
		data := msg.data.(recipesPayload)
		if data.err != nil {
			m.notify(favorites.NotificationFor(data.err))
		}
		return m, m.refreshFavorites()
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case AuthView:
		body = m.renderAuth()
	case CategoryView:
		body = m.renderList(m.categoryList, m.keys.enter, m.keys.favorites, m.keys.logout, m.keys.quit)
	case RecipeListView:
		body = m.renderList(m.recipeList, m.keys.enter, m.keys.like, m.keys.favorites, m.keys.back, m.keys.quit)
	case DetailView:
		body = m.renderDetail()
	case FavoritesView:
		body = m.renderList(m.favoriteList, m.keys.enter, m.keys.unlike, m.keys.refresh, m.keys.back, m.keys.quit)
	}

	return body + "\n" + m.renderStatus()
}

func (m *Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.mode):
		next := auth.ModeRegister
		if m.form.mode == auth.ModeRegister {
			next = auth.ModeLogin
		}
		m.auth.SetMode(next)
		m.form = newAuthForm(next)
		return m, nil
	case key.Matches(msg, m.keys.enter):
		m.loading = true
		return m, m.submitAuth()
	case msg.Type == tea.KeyTab || msg.Type == tea.KeyDown:
		return m, m.form.move(1)
	case msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp:
		return m, m.form.move(-1)
	}

	changed, cmd := m.form.update(msg)
	if changed {
		m.auth.ClearError(m.form.focused())
	}
	return m, cmd
}

func (m *Model) handleCategoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.categoryList.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.categoryList.SelectedItem().(categoryItem); ok {
			m.loading = true
			return m, m.selectCategory(item.category.Name)
		}
		return m, nil
	case key.Matches(msg, m.keys.favorites):
		return m, m.showFavorites()
	case key.Matches(msg, m.keys.refresh):
		m.loading = true
		return m, m.fetchCategories()
	case key.Matches(msg, m.keys.logout):
		return m, m.logout()
	}

	return m.updateLists(msg)
}

func (m *Model) handleRecipeListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.recipeList.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = CategoryView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.recipeList.SelectedItem().(recipeItem); ok {
			m.loading = true
			return m, m.fetchDetail(item.recipe.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.like):
		if item, ok := m.recipeList.SelectedItem().(recipeItem); ok {
			return m, m.toggle(item.recipe)
		}
		return m, nil
	case key.Matches(msg, m.keys.favorites):
		return m, m.showFavorites()
	}

	return m.updateLists(msg)
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = m.detailFrom
		return m, nil
	case key.Matches(msg, m.keys.like):
		return m, m.toggle(m.detail.Recipe)
	case key.Matches(msg, m.keys.open):
		links := m.detail.Links()
		if len(links) == 0 {
			m.notify(favorites.Notification{Kind: favorites.KindInfo, Message: "No links for this recipe"})
			return m, nil
		}
		if err := m.open(links[0]); err != nil {
			m.notify(failure("Could not open browser", err))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleFavoritesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.favoriteList.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = CategoryView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.favoriteList.SelectedItem().(recipeItem); ok {
			m.loading = true
			return m, m.fetchDetail(item.recipe.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.unlike):
		if item, ok := m.favoriteList.SelectedItem().(recipeItem); ok {
			return m, m.unlike(item.recipe.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		m.loading = true
		return m, m.fetchFavorites()
	}

	return m.updateLists(msg)
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case CategoryView:
		m.categoryList, cmd = m.categoryList.Update(msg)
	case RecipeListView:
		m.recipeList, cmd = m.recipeList.Update(msg)
	case FavoritesView:
		m.favoriteList, cmd = m.favoriteList.Update(msg)
	case AuthView:
		_, cmd = m.form.update(msg)
	}
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	for _, l := range []*list.Model{&m.categoryList, &m.recipeList, &m.favoriteList} {
		l.SetSize(width-4, height-6)
	}
	m.viewport.Width = width - 4
	m.viewport.Height = height - 6
}

func (m *Model) notify(n favorites.Notification) {
	m.status = &n
}

func (m *Model) showFavorites() tea.Cmd {
	m.view = FavoritesView
	m.loading = true
	return tea.Batch(m.refreshFavorites(), m.fetchFavorites())
}

// refreshFavorites rebuilds the favorites list from local state.
func (m *Model) refreshFavorites() tea.Cmd {
	return m.favoriteList.SetItems(recipeItems(m.favorites.Recipes(), m.favorites))
}

func (m *Model) submitAuth() tea.Cmd {
	flow := m.auth
	ctx := m.ctx
	if m.form.mode == auth.ModeRegister {
		form := m.form.registration()
		return func() tea.Msg {
			return authenticatedMsg(flow.SubmitRegistration(ctx, form))
		}
	}

	email, password := m.form.login()
	return func() tea.Msg {
		return authenticatedMsg(flow.SubmitLogin(ctx, email, password))
	}
}

func (m *Model) logout() tea.Cmd {
	return func() tea.Msg {
		if err := m.auth.Logout(m.ctx); err != nil {
			return loggedOutMsg(err)
		}
		return loggedOutMsg(m.favorites.Reset(m.ctx))
	}
}

func (m *Model) fetchCategories() tea.Cmd {
	return func() tea.Msg {
		categories, err := m.browser.Categories(m.ctx)
		return categoriesFetchedMsg(categories, err)
	}
}

func (m *Model) selectCategory(name string) tea.Cmd {
	return func() tea.Msg {
		recipes, err := m.browser.Select(m.ctx, name)
		return recipesFetchedMsg(name, recipes, err)
	}
}

func (m *Model) fetchDetail(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.browser.Detail(m.ctx, id)
		return detailFetchedMsg(detail, err)
	}
}

func (m *Model) fetchFavorites() tea.Cmd {
	return func() tea.Msg {
		recipes, err := m.favorites.List(m.ctx)
		return favoritesFetchedMsg(recipes, err)
	}
}

func (m *Model) toggle(recipe models.Recipe) tea.Cmd {
	m.pending++
	return func() tea.Msg {
		result, err := m.favorites.Toggle(m.ctx, recipe)
		return favoriteToggledMsg(recipe, result, err)
	}
}

func (m *Model) unlike(id string) tea.Cmd {
	m.pending++
	return func() tea.Msg {
		return favoriteRemovedMsg(id, m.favorites.Unlike(m.ctx, id))
	}
}

func (m *Model) renderAuth() string {
	title := "Log in"
	if m.form.mode == auth.ModeRegister {
		title = "Create an account"
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.next, m.keys.mode, m.keys.forceQuit}
	return fmt.Sprintf("%s\n%s\n%s", styles.title.Render(title), m.form.view(m.auth.Errors()), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderList(l list.Model, keys ...key.Binding) string {
	return fmt.Sprintf("%s\n\n%s", l.View(), m.help.ShortHelpView(keys))
}

func (m *Model) renderDetail() string {
	if m.detail == nil {
		return ""
	}

	marker := ""
	switch m.favorites.Status(m.detail.ID) {
	case favorites.StatusPending:
		marker = styles.warn.Render(" saving…")
	case favorites.StatusConfirmed:
		marker = styles.ok.Render(" ★")
	}

	helpKeys := []key.Binding{m.keys.like, m.keys.open, m.keys.up, m.keys.down, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s%s\n%s\n\n%s", styles.title.Render(m.detail.Name), marker, m.viewport.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderStatus() string {
	var parts []string
	if m.loading || m.pending > 0 {
		parts = append(parts, m.spinner.View()+" working…")
	}
	if m.status != nil {
		parts = append(parts, styles.notice(*m.status))
	}
	return strings.Join(parts, "  ")
}

// failure builds an error notification, preferring the server's message.
func failure(prefix string, err error) favorites.Notification {
	msg := err.Error()
	if server, ok := shared.ServerMessage(err); ok {
		msg = server
	} else if errors.Is(err, shared.ErrUnauthorized) {
		msg = "please log in again"
	}
	return favorites.Notification{Kind: favorites.KindError, Message: fmt.Sprintf("%s: %s", prefix, msg)}
}
