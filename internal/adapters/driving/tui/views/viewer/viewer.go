// Package viewer provides the flipbook reading view: a paginated page
// surface with animated turns, zoom/pan and render virtualization.
package viewer

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/components/page"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/keymap"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/foliolabs/folio-cli/internal/core/domain"
	"github.com/foliolabs/folio-cli/internal/core/ports/driven"
	"github.com/foliolabs/folio-cli/internal/core/ports/driving"
	"github.com/foliolabs/folio-cli/internal/flipbook"
)

// resizeDebounce is how long the terminal size must hold still before the
// layout is recomputed.
const resizeDebounce = 150 * time.Millisecond

// panStep is the pan distance per key press, in virtual pixels.
const panStep = 6

// View is the flipbook viewer component.
type View struct {
	styles   *styles.Styles
	keys     *keymap.KeyMap
	branding domain.Branding

	publications driving.PublicationService
	blobs        driven.BlobStore
	renderer     driven.DocumentRenderer

	pub *domain.Publication

	// session stamps every async command issued for the current mount;
	// results carrying an older stamp are discarded.
	session int

	doc       driven.Document
	pageCount int
	aspect    float64

	ctrl   *flipbook.Controller
	zoom   *flipbook.Zoom
	layout flipbook.Layout

	images   map[int]image.Image
	pending  map[int]bool
	pageErrs map[int]error

	width  int
	height int
	ready  bool

	resizeGen   int
	layoutDirty bool
	fullscreen  bool

	spin         spinner.Model
	loading      bool
	err          error
	notice       string
	viewRecorded bool
}

// NewView creates a new viewer.
func NewView(
	s *styles.Styles,
	keys *keymap.KeyMap,
	branding domain.Branding,
	publications driving.PublicationService,
	blobs driven.BlobStore,
	renderer driven.DocumentRenderer,
) *View {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &View{
		styles:       s,
		keys:         keys,
		branding:     branding,
		publications: publications,
		blobs:        blobs,
		renderer:     renderer,
		spin:         sp,
		images:       map[int]image.Image{},
		pending:      map[int]bool{},
		pageErrs:     map[int]error{},
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetPublication mounts the viewer on a publication. The document is
// opened exactly once per mount; all page rasterizations share the handle.
func (v *View) SetPublication(pub domain.Publication) tea.Cmd {
	v.Close()

	v.session++
	v.pub = &pub
	v.doc = nil
	v.pageCount = 0
	v.aspect = 0
	v.ctrl = nil
	v.zoom = flipbook.NewZoom()
	v.layout = flipbook.Layout{}
	v.images = map[int]image.Image{}
	v.pending = map[int]bool{}
	v.pageErrs = map[int]error{}
	v.layoutDirty = false
	v.fullscreen = false
	v.loading = true
	v.err = nil
	v.notice = ""
	v.viewRecorded = false

	return tea.Batch(v.spin.Tick, v.openDocument())
}

// Close releases the document handle for the current mount, if any.
func (v *View) Close() {
	if v.doc != nil {
		_ = v.doc.Close()
		v.doc = nil
	}
}

// openDocument resolves the publication's document to a local file and
// opens it through the renderer.
func (v *View) openDocument() tea.Cmd {
	session := v.session
	pub := v.pub
	return func() tea.Msg {
		if pub == nil {
			return messages.DocumentOpened{Session: session, Err: fmt.Errorf("no publication selected")}
		}

		path, err := v.blobs.Resolve(context.Background(), pub.DocumentURL)
		if err != nil {
			return messages.DocumentOpened{Session: session, Err: fmt.Errorf("resolving document: %w", err)}
		}

		doc, err := v.renderer.Open(path)
		if err != nil {
			return messages.DocumentOpened{Session: session, Err: err}
		}

		count := doc.PageCount()
		if count < 1 {
			_ = doc.Close()
			return messages.DocumentOpened{Session: session, Err: fmt.Errorf("document has no pages")}
		}

		w, h, err := doc.PageSize(0)
		if err != nil || w <= 0 || h <= 0 {
			_ = doc.Close()
			return messages.DocumentOpened{Session: session, Err: fmt.Errorf("reading page size: %v", err)}
		}

		return messages.DocumentOpened{
			Session:   session,
			Document:  doc,
			PageCount: count,
			Aspect:    w / h,
		}
	}
}

// Update handles messages for the viewer.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		v.resizeGen++
		gen := v.resizeGen
		return v, tea.Tick(resizeDebounce, func(time.Time) tea.Msg {
			return messages.ResizeSettled{Generation: gen}
		})

	case messages.ResizeSettled:
		// Only the newest debounce tick wins.
		if msg.Generation != v.resizeGen {
			return v, nil
		}
		if v.ctrl == nil {
			return v, nil
		}
		if v.ctrl.Turning() {
			// Mid-turn relayout would tear the animation surface; defer
			// until the turn settles.
			v.layoutDirty = true
			return v, nil
		}
		return v, v.applyLayout()

	case messages.DocumentOpened:
		if msg.Session != v.session {
			if doc, ok := msg.Document.(driven.Document); ok && doc != nil {
				_ = doc.Close()
			}
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.doc, _ = msg.Document.(driven.Document)
		v.pageCount = msg.PageCount
		v.aspect = msg.Aspect
		v.ctrl = flipbook.NewController(msg.PageCount)

		cmds := []tea.Cmd{v.applyLayout()}
		if !v.viewRecorded {
			v.viewRecorded = true
			cmds = append(cmds, v.recordView())
		}
		return v, tea.Batch(cmds...)

	case messages.PageRendered:
		if msg.Session != v.session {
			return v, nil
		}
		delete(v.pending, msg.Index)
		if msg.Err != nil {
			v.pageErrs[msg.Index] = msg.Err
			return v, nil
		}
		delete(v.pageErrs, msg.Index)
		v.images[msg.Index] = msg.Image
		return v, nil

	case messages.TurnFinished:
		if msg.Session != v.session || v.ctrl == nil {
			return v, nil
		}
		v.ctrl.Settle()
		if v.layoutDirty {
			v.layoutDirty = false
			return v, v.applyLayout()
		}
		v.evictOutsideWindow()
		return v, v.requestVisible()

	case messages.DownloadFinished:
		if msg.Err != nil {
			v.notice = "download failed: " + msg.Err.Error()
		} else {
			v.notice = "saved " + msg.Path
		}
		return v, nil

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case tea.MouseMsg:
		return v.handleMouse(msg)

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

// handleKey routes key presses. Arrow keys pan while the zoom transform is
// active and navigate otherwise; flip keys always reach the flip surface.
func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if keymap.Matches(keyStr, v.keys.Back) {
		v.Close()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewLibrary}
		}
	}

	if v.ctrl == nil {
		return v, nil
	}

	if v.zoom.Active() {
		switch keyStr {
		case "up":
			v.zoom.Pan(0, panStep)
			return v, nil
		case "down":
			v.zoom.Pan(0, -panStep)
			return v, nil
		case "left":
			v.zoom.Pan(panStep, 0)
			return v, nil
		case "right":
			v.zoom.Pan(-panStep, 0)
			return v, nil
		}
	}

	switch {
	case keymap.Matches(keyStr, v.keys.Next):
		return v, v.dispatch(flipbook.CmdNext)
	case keymap.Matches(keyStr, v.keys.Prev):
		return v, v.dispatch(flipbook.CmdPrev)
	case keymap.Matches(keyStr, v.keys.First):
		return v, v.dispatch(flipbook.CmdGoto, 0)
	case keymap.Matches(keyStr, v.keys.Last):
		return v, v.dispatch(flipbook.CmdGoto, v.pageCount-1)
	case keymap.Matches(keyStr, v.keys.ZoomIn):
		v.zoom.In()
		return v, nil
	case keymap.Matches(keyStr, v.keys.ZoomOut):
		v.zoom.Out()
		return v, nil
	case keymap.Matches(keyStr, v.keys.ZoomReset):
		v.zoom.Reset()
		return v, nil
	case keymap.Matches(keyStr, v.keys.Fullscreen):
		v.fullscreen = !v.fullscreen
		if v.ctrl != nil && !v.ctrl.Turning() {
			return v, v.applyLayout()
		}
		v.layoutDirty = true
		return v, nil
	case keymap.Matches(keyStr, v.keys.Download):
		return v, v.download()
	case keymap.Matches(keyStr, v.keys.Share):
		if v.pub != nil {
			pub := *v.pub
			return v, func() tea.Msg {
				return messages.ShareRequested{Publication: pub}
			}
		}
	}

	return v, nil
}

// handleMouse maps clicks to page turns. Click-to-flip belongs to the
// flip surface, so it stays enabled while zoomed.
func (v *View) handleMouse(msg tea.MouseMsg) (*View, tea.Cmd) {
	if v.ctrl == nil || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return v, nil
	}
	return v, v.dispatch(v.ctrl.CommandForClick(msg.X, v.width))
}

// dispatch starts a turn and schedules its settle tick.
func (v *View) dispatch(cmd flipbook.Command, gotoIndex ...int) tea.Cmd {
	if v.ctrl == nil || !v.ctrl.Dispatch(cmd, gotoIndex...) {
		return nil
	}
	session := v.session
	return tea.Tick(v.ctrl.TurnDuration(), func(time.Time) tea.Msg {
		return messages.TurnFinished{Session: session}
	})
}

// applyLayout recomputes the page box from the current surface and
// restarts rasterization. Cached images are sized for the old box and are
// dropped wholesale.
func (v *View) applyLayout() tea.Cmd {
	vw, vh := v.surfaceSize()
	v.layout = flipbook.FitPage(vw, vh, v.aspect, false)
	v.images = map[int]image.Image{}
	v.pending = map[int]bool{}
	v.pageErrs = map[int]error{}
	if !v.layout.Ready {
		return nil
	}
	return v.requestVisible()
}

// surfaceSize returns the page surface in virtual pixels: full columns,
// two pixels per row, minus chrome.
func (v *View) surfaceSize() (int, int) {
	rows := v.height - v.chromeRows()
	if rows < 0 {
		rows = 0
	}
	return v.width, rows * 2
}

// chromeRows is the vertical space taken by the title bar and footer.
func (v *View) chromeRows() int {
	if v.fullscreen {
		return 0
	}
	rows := 2 // footer
	if v.branding.ShowTitleBar {
		rows += 2
	}
	return rows
}

// requestVisible requests rasterization for every page in the render
// window around the settled index.
func (v *View) requestVisible() tea.Cmd {
	if v.ctrl == nil || !v.layout.Ready {
		return nil
	}
	var cmds []tea.Cmd
	for _, idx := range flipbook.RenderSet(v.ctrl.Current(), v.pageCount) {
		if cmd := v.requestRender(idx); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// requestRender requests one page unless it is cached or in flight.
func (v *View) requestRender(idx int) tea.Cmd {
	if v.doc == nil || v.pending[idx] {
		return nil
	}
	if _, ok := v.images[idx]; ok {
		return nil
	}
	v.pending[idx] = true

	session := v.session
	doc := v.doc
	layout := v.layout
	return func() tea.Msg {
		w, _, err := doc.PageSize(idx)
		if err != nil || w <= 0 {
			return messages.PageRendered{Session: session, Index: idx, Err: fmt.Errorf("page %d size: %v", idx, err)}
		}

		// Rasterize at box width times density, then downsample to the
		// exact box for crisp half-block output.
		scale := float64(layout.PageWidth) * layout.Density / w
		img, err := doc.RenderPage(context.Background(), idx, scale)
		if err != nil {
			return messages.PageRendered{Session: session, Index: idx, Err: err}
		}

		return messages.PageRendered{
			Session: session,
			Index:   idx,
			Image:   page.Fit(img, layout.PageWidth, layout.PageHeight),
		}
	}
}

// evictOutsideWindow drops cached pages that left the render window.
func (v *View) evictOutsideWindow() {
	for idx := range v.images {
		if !flipbook.ShouldFullyRender(idx, v.ctrl.Current(), v.pageCount) {
			delete(v.images, idx)
		}
	}
}

// recordView registers one view for this mount. Fire and forget.
func (v *View) recordView() tea.Cmd {
	id := v.pub.ID
	return func() tea.Msg {
		v.publications.RecordView(context.Background(), id)
		return nil
	}
}

// download copies the original PDF bytes to the working directory,
// independent of the rasterization pipeline.
func (v *View) download() tea.Cmd {
	if v.pub == nil {
		return nil
	}
	pub := *v.pub
	return func() tea.Msg {
		r, err := v.blobs.Open(context.Background(), pub.DocumentURL)
		if err != nil {
			return messages.DownloadFinished{Err: err}
		}
		defer r.Close()

		path := downloadName(pub.Title)
		f, err := os.Create(path)
		if err != nil {
			return messages.DownloadFinished{Err: err}
		}
		defer f.Close()

		if _, err := io.Copy(f, r); err != nil {
			return messages.DownloadFinished{Err: err}
		}
		return messages.DownloadFinished{Path: path}
	}
}

// downloadName derives a safe local filename from a publication title.
func downloadName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "publication"
	}
	return name + ".pdf"
}

// View renders the viewer.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	if !v.fullscreen && v.branding.ShowTitleBar {
		b.WriteString(v.renderTitleBar())
		b.WriteString("\n\n")
	}

	switch {
	case v.loading:
		b.WriteString(v.spin.View())
		b.WriteString(v.styles.Muted.Render(" Opening publication..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Could not open this publication: " + v.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back to library"))
	case !v.layout.Ready:
		b.WriteString(v.styles.Muted.Render("Terminal too small to lay out pages."))
	default:
		b.WriteString(v.renderSurface())
	}

	if !v.fullscreen && !v.loading && v.err == nil {
		b.WriteString("\n")
		b.WriteString(v.renderFooter())
	}
	return b.String()
}

// renderTitleBar renders the branding row.
func (v *View) renderTitleBar() string {
	logo := v.branding.LogoText
	if logo == "" {
		logo = "folio"
	}
	title := ""
	if v.pub != nil {
		title = v.pub.Title
	}
	return v.styles.Title.Render(logo) + "  " + v.styles.Normal.Render(title)
}

// renderSurface renders the open spread, applying the zoom transform when
// it deviates from identity.
func (v *View) renderSurface() string {
	left, right := flipbook.SpreadFor(v.ctrl.Current(), v.pageCount)

	var body string
	if v.zoom.Active() {
		spread := page.ComposeSpread(v.slotImage(left), v.slotImageOrNil(right), v.layout.PageWidth, v.layout.PageHeight)
		vw, vh := v.surfaceSize()
		tx, ty := v.zoom.Offset()
		body = page.Cells(page.Transform(spread, vw, vh, v.zoom.Scale(), tx, ty))
	} else {
		slots := []string{v.slotCells(left)}
		if right >= 0 {
			slots = append(slots, v.slotCells(right))
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, slots...)
	}

	rows := v.height - v.chromeRows()
	return lipgloss.Place(v.width, rows, lipgloss.Center, lipgloss.Center, body)
}

// slotCells renders a single page slot: the rasterized page, an inline
// error marker, or the neutral placeholder.
func (v *View) slotCells(idx int) string {
	if err := v.pageErrs[idx]; err != nil {
		return page.ErrorSlot(v.layout.PageWidth, v.layout.PageHeight, v.styles.Error)
	}
	return page.Cells(v.slotImage(idx))
}

// slotImage returns the cached page image or the placeholder.
func (v *View) slotImage(idx int) image.Image {
	if img, ok := v.images[idx]; ok {
		return img
	}
	return page.PlaceholderImage(v.layout.PageWidth, v.layout.PageHeight)
}

// slotImageOrNil is slotImage for optional right-hand slots.
func (v *View) slotImageOrNil(idx int) image.Image {
	if idx < 0 {
		return nil
	}
	return v.slotImage(idx)
}

// renderFooter renders the page indicator, zoom state and key help.
func (v *View) renderFooter() string {
	var parts []string
	if v.ctrl != nil {
		left, right := flipbook.SpreadFor(v.ctrl.Current(), v.pageCount)
		indicator := fmt.Sprintf("p.%d", left+1)
		if right >= 0 {
			indicator = fmt.Sprintf("p.%d-%d", left+1, right+1)
		}
		indicator += fmt.Sprintf(" / %d", v.pageCount)
		if v.ctrl.Turning() {
			indicator += " ~"
		}
		parts = append(parts, indicator)
	}
	if v.zoom != nil && v.zoom.Active() {
		parts = append(parts, fmt.Sprintf("zoom %.0f%%", v.zoom.Scale()*100))
	}
	if v.notice != "" {
		parts = append(parts, v.notice)
	}

	status := v.styles.StatusBar.Render(strings.Join(parts, "  "))
	help := v.styles.Help.Render("[←/→] turn  [+/-/0] zoom  [f] fullscreen  [d] download  [s] share  [esc] back")
	return status + "\n" + help
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// CurrentPage returns the settled page index.
func (v *View) CurrentPage() int {
	if v.ctrl == nil {
		return 0
	}
	return v.ctrl.Current()
}

// Turning reports whether a turn animation is in flight.
func (v *View) Turning() bool {
	return v.ctrl != nil && v.ctrl.Turning()
}

// Layout returns the active page layout.
func (v *View) Layout() flipbook.Layout {
	return v.layout
}

// ZoomScale returns the current zoom scale.
func (v *View) ZoomScale() float64 {
	if v.zoom == nil {
		return 1.0
	}
	return v.zoom.Scale()
}

// Fullscreen reports whether chrome is hidden.
func (v *View) Fullscreen() bool {
	return v.fullscreen
}

// Loading reports whether the document is still opening.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the terminal session error, if any.
func (v *View) Err() error {
	return v.err
}

// RenderedPages returns the indices with a cached rasterization.
func (v *View) RenderedPages() []int {
	pages := make([]int, 0, len(v.images))
	for idx := range v.images {
		pages = append(pages, idx)
	}
	return pages
}

// Session returns the current mount generation.
func (v *View) Session() int {
	return v.session
}
