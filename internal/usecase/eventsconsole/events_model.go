package eventsconsole

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"insuredevents/internal/bootstrap/logging"
	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/errs"
	"insuredevents/internal/ports"
	"insuredevents/internal/usecase/insuredevents"
)

const defaultPageSize = 20

// Loader is what the console needs from the insured events facade.
type Loader interface {
	Load(ctx context.Context, filter insuredevent.Filter, pagination ports.Pagination, opts ...insuredevents.Option) (ports.SearchResult[insuredevent.InsuredEvent], error)
	GetByID(ctx context.Context, id string) (insuredevent.InsuredEvent, error)
	GetFilterDictionaries(ctx context.Context) (insuredevent.FilterDictionaries, error)
}

type Options struct {
	Filter          insuredevent.Filter
	PageSize        int
	RefreshInterval time.Duration
}

type eventsModel struct {
	ctx             context.Context
	loader          Loader
	filter          insuredevent.Filter
	page            int
	pageSize        int
	refreshInterval time.Duration

	statuses []string

	// seq identifies the latest page request; older answers are dropped.
	seq           int
	items         []insuredevent.InsuredEvent
	total         int
	selectedIndex int
	detail        insuredevent.InsuredEvent
	hasDetail     bool
	status        string
}

type pageLoadedMsg struct {
	seq    int
	result ports.SearchResult[insuredevent.InsuredEvent]
	forced bool
	err    error
}

type dictionariesLoadedMsg struct {
	dicts insuredevent.FilterDictionaries
	err   error
}

type detailLoadedMsg struct {
	policyID string
	event    insuredevent.InsuredEvent
	err      error
}

type tickMsg struct{}

func NewEventsModel(ctx context.Context, loader Loader, options Options) tea.Model {
	pageSize := options.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &eventsModel{
		ctx:             ctx,
		loader:          loader,
		filter:          options.Filter,
		page:            1,
		pageSize:        pageSize,
		refreshInterval: options.RefreshInterval,
		status:          "loading",
	}
}

func (m *eventsModel) Init() tea.Cmd {
	return tea.Batch(m.loadDictionariesCmd(), m.loadPageCmd(false), m.tickCmd())
}

func (m *eventsModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tickMsg:
		return m, tea.Batch(m.loadPageCmd(false), m.tickCmd())
	case dictionariesLoadedMsg:
		if msg.err != nil {
			m.status = "dictionaries failed: " + msg.err.Error()
			return m, nil
		}
		m.statuses = msg.dicts.EventStatuses
		return m, nil
	case pageLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.status = "load failed: " + msg.err.Error()
			return m, nil
		}
		m.items = msg.result.Items
		m.total = msg.result.Total
		if m.selectedIndex >= len(m.items) {
			m.selectedIndex = max(len(m.items)-1, 0)
		}
		if len(m.items) == 0 {
			m.status = "no events"
			return m, nil
		}
		m.status = fmt.Sprintf("page %d/%d, %d events", m.page, m.pageCount(), m.total)
		if msg.forced {
			m.status += " (refreshed)"
		}
		return m, nil
	case detailLoadedMsg:
		selected, ok := m.selectedEvent()
		if !ok || selected.PolicyID != msg.policyID {
			return m, nil
		}
		if msg.err != nil {
			m.hasDetail = false
			m.status = "detail failed: " + msg.err.Error()
			return m, nil
		}
		m.detail = msg.event
		m.hasDetail = true
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.selectedIndex > 0 {
				m.selectedIndex--
				m.hasDetail = false
			}
			return m, nil
		case "down", "j":
			if m.selectedIndex < len(m.items)-1 {
				m.selectedIndex++
				m.hasDetail = false
			}
			return m, nil
		case "n":
			if m.page >= m.pageCount() {
				return m, nil
			}
			m.page++
			return m, m.resetAndLoad(false)
		case "p":
			if m.page <= 1 {
				return m, nil
			}
			m.page--
			return m, m.resetAndLoad(false)
		case "s":
			m.filter.EventStatus = nextStatus(m.statuses, m.filter.EventStatus)
			m.page = 1
			return m, m.resetAndLoad(false)
		case "r":
			m.status = "refreshing"
			return m, m.loadPageCmd(true)
		case "enter":
			return m, m.loadSelectedDetailCmd()
		case "esc":
			m.hasDetail = false
			return m, nil
		}
	}
	return m, nil
}

func (m *eventsModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("62"))

	var builder strings.Builder
	builder.WriteString(titleStyle.Render("Insured Events"))
	builder.WriteString("\n")
	builder.WriteString(dimStyle.Render(fmt.Sprintf(
		"status=%s insurant=%s type=%s page=%d/%d size=%d",
		firstNonEmpty(m.filter.EventStatus, "all"),
		firstNonEmpty(m.filter.Insurant, "-"),
		firstNonEmpty(m.filter.InsuranceType, "-"),
		m.page,
		m.pageCount(),
		m.pageSize,
	)))
	builder.WriteString("\n\n")

	builder.WriteString(sectionStyle.Render("Events"))
	builder.WriteString("\n")
	if len(m.items) == 0 {
		builder.WriteString(dimStyle.Render("- no events"))
		builder.WriteString("\n\n")
	} else {
		for index, item := range m.items {
			line := fmt.Sprintf(
				"%s [%s] %s %s %s",
				item.EventNumber,
				firstNonEmpty(item.EventStatus, "-"),
				item.PolicyNumber,
				item.InsurantFullName,
				item.ChangedAt,
			)
			if index == m.selectedIndex {
				builder.WriteString(selectedStyle.Render("> " + line))
			} else {
				builder.WriteString("  " + line)
			}
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}

	builder.WriteString(sectionStyle.Render("Detail"))
	builder.WriteString("\n")
	if !m.hasDetail {
		builder.WriteString(dimStyle.Render("- press enter to load"))
		builder.WriteString("\n\n")
	} else {
		fmt.Fprintf(&builder, "Policy: %s (%s)\n", m.detail.PolicyNumber, m.detail.PolicyID)
		fmt.Fprintf(&builder, "Contract: %s\n", firstNonEmpty(m.detail.ContractNumber, "-"))
		fmt.Fprintf(&builder, "Insurant: %s\n", firstNonEmpty(m.detail.InsurantFullName, "-"))
		fmt.Fprintf(&builder, "Product: %s\n", firstNonEmpty(m.detail.ProductName, "-"))
		fmt.Fprintf(&builder, "Event: %s [%s]\n", m.detail.EventNumber, firstNonEmpty(m.detail.EventStatus, "-"))
		fmt.Fprintf(&builder, "Regress: %s\n", firstNonEmpty(string(m.detail.RegressFlag), "-"))
		fmt.Fprintf(&builder, "Changed: %s\n", firstNonEmpty(m.detail.ChangedAt, "-"))
		builder.WriteString("\n")
	}

	builder.WriteString(sectionStyle.Render("Status"))
	builder.WriteString("\n")
	builder.WriteString("- " + firstNonEmpty(m.status, "ready"))
	builder.WriteString("\n\n")

	builder.WriteString(dimStyle.Render("Keys: ↑/k ↓/j move  n/p page  s status  r refresh  enter detail  q quit"))
	return builder.String()
}

func (m *eventsModel) resetAndLoad(force bool) tea.Cmd {
	m.selectedIndex = 0
	m.hasDetail = false
	return m.loadPageCmd(force)
}

func (m *eventsModel) tickCmd() tea.Cmd {
	if m.refreshInterval <= 0 {
		return nil
	}
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *eventsModel) loadDictionariesCmd() tea.Cmd {
	return func() tea.Msg {
		dicts, err := m.loader.GetFilterDictionaries(m.ctx)
		return dictionariesLoadedMsg{dicts: dicts, err: err}
	}
}

func (m *eventsModel) loadPageCmd(force bool) tea.Cmd {
	m.seq++
	seq := m.seq
	filter := m.filter
	pagination := ports.Pagination{Page: m.page, PageSize: m.pageSize}

	return func() tea.Msg {
		var opts []insuredevents.Option
		if force {
			opts = append(opts, insuredevents.WithForce())
		}
		result, err := m.loader.Load(m.ctx, filter, pagination, opts...)
		if err != nil {
			logging.Warn(m.ctx, "console page load failed", slog.Int("page", pagination.Page), slog.Any("err", errs.Loggable(err)))
		}
		return pageLoadedMsg{seq: seq, result: result, forced: force, err: err}
	}
}

func (m *eventsModel) loadSelectedDetailCmd() tea.Cmd {
	selected, ok := m.selectedEvent()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		event, err := m.loader.GetByID(m.ctx, selected.PolicyID)
		return detailLoadedMsg{policyID: selected.PolicyID, event: event, err: err}
	}
}

func (m *eventsModel) selectedEvent() (insuredevent.InsuredEvent, bool) {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.items) {
		return insuredevent.InsuredEvent{}, false
	}
	return m.items[m.selectedIndex], true
}

func (m *eventsModel) pageCount() int {
	if m.total <= 0 {
		return 1
	}
	return (m.total + m.pageSize - 1) / m.pageSize
}

// nextStatus cycles "" -> statuses[0] -> ... -> statuses[n-1] -> "".
func nextStatus(statuses []string, current string) string {
	if len(statuses) == 0 {
		return ""
	}
	if current == "" {
		return statuses[0]
	}
	for i, status := range statuses {
		if status == current {
			if i+1 < len(statuses) {
				return statuses[i+1]
			}
			return ""
		}
	}
	return ""
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
