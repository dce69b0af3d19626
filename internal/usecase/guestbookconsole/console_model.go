package guestbookconsole

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"seichi/internal/bootstrap/logging"
	"seichi/internal/ports"
	"seichi/internal/usecase/guestbook"
)

const maxShownTrending = 5
const maxAuditLines = 8

type Options struct {
	UserID          uint64
	RefreshInterval time.Duration
}

type consoleModel struct {
	ctx             context.Context
	service         *guestbook.Service
	userID          uint64
	refreshInterval time.Duration

	pilgrimages   []ports.Pilgrimage
	selectedIndex int
	trending      []ports.GuestbookEntry
	user          ports.User
	hasUser       bool
	detail        guestbook.EntryDetail
	hasDetail     bool
	status        string
	auditLogs     []string
}

type catalogLoadedMsg struct {
	pilgrimages []ports.Pilgrimage
	trending    []ports.GuestbookEntry
	user        ports.User
	err         error
}

type detailLoadedMsg struct {
	entryID uint64
	detail  guestbook.EntryDetail
	err     error
}

type tickMsg struct{}

type actionDoneMsg struct {
	action string
	result string
	err    error
}

func NewConsoleModel(ctx context.Context, service *guestbook.Service, options Options) tea.Model {
	interval := options.RefreshInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	return &consoleModel{
		ctx:             ctx,
		service:         service,
		userID:          options.UserID,
		refreshInterval: interval,
		status:          "starting",
	}
}

func (m *consoleModel) Init() tea.Cmd {
	return tea.Batch(m.loadCatalogCmd(), m.tickCmd())
}

func (m *consoleModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tickMsg:
		return m, tea.Batch(m.loadCatalogCmd(), m.tickCmd())
	case catalogLoadedMsg:
		if msg.err != nil {
			m.status = "refresh failed: " + msg.err.Error()
			return m, nil
		}
		m.pilgrimages = msg.pilgrimages
		m.trending = msg.trending
		m.user = msg.user
		m.hasUser = true
		if len(m.pilgrimages) == 0 {
			m.selectedIndex = 0
			m.status = "catalog is empty"
			return m, nil
		}
		if m.selectedIndex < 0 {
			m.selectedIndex = 0
		}
		if m.selectedIndex >= len(m.pilgrimages) {
			m.selectedIndex = len(m.pilgrimages) - 1
		}
		m.status = fmt.Sprintf("refreshed, %d pilgrimages", len(m.pilgrimages))
		return m, nil
	case detailLoadedMsg:
		if msg.err != nil {
			m.hasDetail = false
			m.status = "detail load failed: " + msg.err.Error()
			return m, nil
		}
		m.detail = msg.detail
		m.hasDetail = true
		m.status = fmt.Sprintf("viewing entry %d", msg.entryID)
		return m, nil
	case actionDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
			m.appendAuditLog(msg.action, "", msg.err)
		} else {
			m.status = fmt.Sprintf("%s done: %s", msg.action, msg.result)
			m.appendAuditLog(msg.action, msg.result, nil)
		}
		return m, m.loadCatalogCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "g":
			m.status = "refreshing"
			return m, m.loadCatalogCmd()
		case "up", "k":
			if m.selectedIndex > 0 {
				m.selectedIndex--
			}
			return m, nil
		case "down", "j":
			if m.selectedIndex < len(m.pilgrimages)-1 {
				m.selectedIndex++
			}
			return m, nil
		case "c":
			return m, m.checkInCmd()
		case "v":
			return m, m.viewTrendingCmd()
		}
	}
	return m, nil
}

func (m *consoleModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("62"))

	var builder strings.Builder
	builder.WriteString(titleStyle.Render("Guestbook Console"))
	builder.WriteString("\n")
	points := int64(0)
	nickname := "-"
	if m.hasUser {
		points = m.user.Points
		nickname = m.user.Nickname
	}
	builder.WriteString(dimStyle.Render(fmt.Sprintf(
		"user=%s points=%d refresh=%s",
		nickname,
		points,
		m.refreshInterval,
	)))
	builder.WriteString("\n\n")

	builder.WriteString(sectionStyle.Render("Pilgrimages"))
	builder.WriteString("\n")
	if len(m.pilgrimages) == 0 {
		builder.WriteString(dimStyle.Render("- no pilgrimages"))
		builder.WriteString("\n\n")
	} else {
		for index, pilgrimage := range m.pilgrimages {
			line := fmt.Sprintf("#%d %s (%s) visits=%d",
				pilgrimage.PilgrimageID, pilgrimage.Name, pilgrimage.Address, pilgrimage.VisitCount)
			if index == m.selectedIndex {
				builder.WriteString(selectedStyle.Render("> " + line))
			} else {
				builder.WriteString("  " + line)
			}
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}

	builder.WriteString(sectionStyle.Render("Trending Today"))
	builder.WriteString("\n")
	if len(m.trending) == 0 {
		builder.WriteString(dimStyle.Render("- no entries today"))
		builder.WriteString("\n\n")
	} else {
		shown := m.trending
		if len(shown) > maxShownTrending {
			shown = shown[:maxShownTrending]
		}
		for _, entry := range shown {
			builder.WriteString(fmt.Sprintf("- e%d likes=%d views=%d %s\n",
				entry.EntryID, entry.LikeCount, entry.ViewCount, entry.Title))
		}
		builder.WriteString("\n")
	}

	builder.WriteString(sectionStyle.Render("Detail"))
	builder.WriteString("\n")
	if !m.hasDetail {
		builder.WriteString(dimStyle.Render("- no entry opened"))
		builder.WriteString("\n\n")
	} else {
		builder.WriteString(fmt.Sprintf("Entry: %d\n", m.detail.Entry.EntryID))
		builder.WriteString(fmt.Sprintf("Title: %s\n", m.detail.Entry.Title))
		builder.WriteString(fmt.Sprintf("Body: %s\n", firstNonEmptyLine(m.detail.Entry.Body)))
		builder.WriteString(fmt.Sprintf("Hashtags: %s\n", strings.Join(m.detail.Hashtags, ",")))
		builder.WriteString(fmt.Sprintf("Images: %d\n", len(m.detail.ImageURLs)))
		builder.WriteString(fmt.Sprintf("Likes: %d Views: %d Comments: %d\n",
			m.detail.Entry.LikeCount, m.detail.Entry.ViewCount, m.detail.CommentCount))
		builder.WriteString("\n")
	}

	builder.WriteString(sectionStyle.Render("Status"))
	builder.WriteString("\n")
	builder.WriteString("- " + firstNonEmpty(m.status, "ready"))
	builder.WriteString("\n\n")

	builder.WriteString(sectionStyle.Render("Actions"))
	builder.WriteString("\n")
	builder.WriteString("- c check in at selected pilgrimage\n")
	builder.WriteString("- v open top trending entry\n")
	builder.WriteString("\n")

	builder.WriteString(sectionStyle.Render("Audit Log"))
	builder.WriteString("\n")
	if len(m.auditLogs) == 0 {
		builder.WriteString(dimStyle.Render("- no actions"))
		builder.WriteString("\n\n")
	} else {
		for _, line := range m.auditLogs {
			builder.WriteString("- " + line)
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}

	builder.WriteString(dimStyle.Render("Keys: ↑/k ↓/j move  g refresh  c check-in  v view  q quit"))
	return builder.String()
}

func (m *consoleModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *consoleModel) loadCatalogCmd() tea.Cmd {
	return func() tea.Msg {
		pilgrimages, err := m.service.ListPilgrimages(m.ctx)
		if err != nil {
			return catalogLoadedMsg{err: err}
		}
		trending, err := m.service.TrendingToday(m.ctx, maxShownTrending)
		if err != nil {
			return catalogLoadedMsg{err: err}
		}
		user, _, err := m.service.UserPoints(m.ctx, m.userID)
		if err != nil {
			return catalogLoadedMsg{err: err}
		}
		return catalogLoadedMsg{
			pilgrimages: pilgrimages,
			trending:    trending,
			user:        user,
		}
	}
}

func (m *consoleModel) checkInCmd() tea.Cmd {
	pilgrimage, ok := m.selectedPilgrimage()
	if !ok {
		m.status = "no pilgrimage selected"
		return nil
	}
	m.status = "checking in..."
	return func() tea.Msg {
		err := m.service.RecordCheckIn(m.ctx, guestbook.RecordCheckInInput{
			UserID:       m.userID,
			PilgrimageID: pilgrimage.PilgrimageID,
		})
		if err != nil {
			return actionDoneMsg{action: "check-in", err: err}
		}
		return actionDoneMsg{action: "check-in", result: pilgrimage.Name}
	}
}

func (m *consoleModel) viewTrendingCmd() tea.Cmd {
	if len(m.trending) == 0 {
		m.status = "no trending entry to open"
		return nil
	}
	entryID := m.trending[0].EntryID
	m.status = "opening entry..."
	return func() tea.Msg {
		if err := m.service.IncreaseView(m.ctx, entryID); err != nil {
			return detailLoadedMsg{entryID: entryID, err: err}
		}
		detail, err := m.service.EntryDetail(m.ctx, entryID, m.userID)
		if err != nil {
			return detailLoadedMsg{entryID: entryID, err: err}
		}
		return detailLoadedMsg{entryID: entryID, detail: detail}
	}
}

func (m *consoleModel) selectedPilgrimage() (ports.Pilgrimage, bool) {
	if len(m.pilgrimages) == 0 {
		return ports.Pilgrimage{}, false
	}
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.pilgrimages) {
		return ports.Pilgrimage{}, false
	}
	return m.pilgrimages[m.selectedIndex], true
}

func (m *consoleModel) appendAuditLog(action string, result string, opErr error) {
	outcome := strings.TrimSpace(result)
	if opErr != nil {
		outcome = "error: " + opErr.Error()
	}
	if outcome == "" {
		outcome = "ok"
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	line := fmt.Sprintf("%s user=%d action=%s result=%s", timestamp, m.userID, action, outcome)
	m.auditLogs = append([]string{line}, m.auditLogs...)
	if len(m.auditLogs) > maxAuditLines {
		m.auditLogs = m.auditLogs[:maxAuditLines]
	}

	logging.Info(m.ctx, "guestbook console action",
		slog.String("time", timestamp),
		slog.Uint64("user_id", m.userID),
		slog.String("action", action),
		slog.String("result", outcome),
	)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		normalized := strings.TrimSpace(value)
		if normalized != "" {
			return normalized
		}
	}
	return ""
}

func firstNonEmptyLine(body string) string {
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if line != "" {
			return line
		}
	}
	return "empty"
}
