// package formatter renders library items, search results and sync history as tables (terminal, CSV, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/services"
	"github.com/desertthunder/shelf/internal/shared"
)

// Format selects how a [Sheet] is written.
type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
)

// ParseFormat maps a flag value to a [Format].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
	}
}

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// Sheet is a titled set of rows sharing one header.
type Sheet struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Artists builds the sheet of followed artists.
func Artists(items []models.Artist) Sheet {
	s := Sheet{Title: "Followed artists", Headers: []string{"#", "Name", "Genres", "ID"}}
	for i, a := range items {
		s.Rows = append(s.Rows, []string{strconv.Itoa(i + 1), a.Name, strings.Join(a.Genres, ", "), a.ID})
	}
	return s
}

// Playlists builds the sheet of followed playlists or playlist search results.
func Playlists(items []models.Playlist) Sheet {
	s := Sheet{Title: "Playlists", Headers: []string{"#", "Name", "Owner", "Public", "Collaborative", "Tracks", "ID"}}
	for i, p := range items {
		s.Rows = append(s.Rows, []string{
			strconv.Itoa(i + 1),
			p.Name,
			p.Owner.DisplayName,
			yesNo(p.Public),
			yesNo(p.Collaborative),
			strconv.Itoa(p.TrackCount()),
			p.ID,
		})
	}
	return s
}

// SavedAlbums builds the sheet of albums saved in the library.
func SavedAlbums(items []models.SavedAlbum) Sheet {
	s := Sheet{Title: "Saved albums", Headers: []string{"#", "Name", "Artists", "Tracks", "Added", "ID"}}
	for i, sa := range items {
		s.Rows = append(s.Rows, []string{
			strconv.Itoa(i + 1),
			sa.Album.Name,
			strings.Join(sa.Album.ArtistNames(), ", "),
			strconv.Itoa(sa.Album.TotalTracks),
			addedDate(sa.AddedAt),
			sa.Album.ID,
		})
	}
	return s
}

// Albums builds the sheet of album search results.
func Albums(items []models.Album) Sheet {
	s := Sheet{Title: "Albums", Headers: []string{"#", "Name", "Artists", "Type", "Released", "Tracks", "ID"}}
	for i, a := range items {
		s.Rows = append(s.Rows, []string{
			strconv.Itoa(i + 1),
			a.Name,
			strings.Join(a.ArtistNames(), ", "),
			a.AlbumType,
			a.ReleaseDate,
			strconv.Itoa(a.TotalTracks),
			a.ID,
		})
	}
	return s
}

// Tracks builds the sheet of an album's track listing.
func Tracks(items []models.Track) Sheet {
	s := Sheet{Title: "Tracks", Headers: []string{"#", "Name", "Duration", "Explicit", "ID"}}
	for i, tr := range items {
		n := tr.TrackNumber
		if n == 0 {
			n = i + 1
		}
		s.Rows = append(s.Rows, []string{
			strconv.Itoa(n),
			tr.Name,
			formatDuration(tr.DurationMS),
			yesNo(tr.Explicit),
			tr.ID,
		})
	}
	return s
}

// SyncResults builds the summary sheet printed after a sync command.
func SyncResults(results []services.SyncResult) Sheet {
	s := Sheet{Title: "Sync", Headers: []string{"Kind", "Status", "Items", "Path", "Error"}}
	for _, r := range results {
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		s.Rows = append(s.Rows, []string{r.Kind, string(r.Status), strconv.Itoa(r.Count), r.Path, errText})
	}
	return s
}

// History builds the sheet of recorded sync runs.
func History(runs []*models.SyncRun) Sheet {
	s := Sheet{Title: "Sync history", Headers: []string{"When", "Kind", "Status", "Items", "Error", "ID"}}
	for _, r := range runs {
		s.Rows = append(s.Rows, []string{
			r.CreatedAt().Local().Format("2006-01-02 15:04:05"),
			r.Kind(),
			string(r.Status()),
			strconv.Itoa(r.ItemCount()),
			r.ErrText(),
			r.ID(),
		})
	}
	return s
}

// Table renders the sheet as a bordered terminal table, preceded by its title.
func (s Sheet) Table() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(s.Headers...).
		Rows(s.Rows...)

	var b strings.Builder
	if s.Title != "" {
		fmt.Fprintf(&b, "%s (%d)\n", titleStyle.Render(s.Title), len(s.Rows))
	}
	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}

// CSV renders the sheet as CSV with a header record.
func (s Sheet) CSV() ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(s.Headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range s.Rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// Markdown renders the sheet as a Markdown heading followed by a pipe table.
func (s Sheet) Markdown() []byte {
	var buf bytes.Buffer

	if s.Title != "" {
		fmt.Fprintf(&buf, "# %s\n\n", s.Title)
	}

	buf.WriteString("| " + strings.Join(escapeCells(s.Headers), " | ") + " |\n")
	buf.WriteString("|" + strings.Repeat(" --- |", len(s.Headers)) + "\n")
	for _, row := range s.Rows {
		buf.WriteString("| " + strings.Join(escapeCells(row), " | ") + " |\n")
	}

	return buf.Bytes()
}

// Write writes the sheet to w in the given format.
func (s Sheet) Write(w io.Writer, format Format) error {
	var data []byte
	switch format {
	case FormatCSV:
		b, err := s.CSV()
		if err != nil {
			return err
		}
		data = b
	case FormatMarkdown:
		data = s.Markdown()
	default:
		data = []byte(s.Table())
	}

	_, err := w.Write(data)
	return err
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		c = strings.ReplaceAll(c, "|", `\|`)
		out[i] = strings.ReplaceAll(c, "\n", " ")
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// formatDuration renders milliseconds as m:ss.
func formatDuration(ms int) string {
	if ms <= 0 {
		return "0:00"
	}
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func addedDate(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}
