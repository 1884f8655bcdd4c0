package output

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dorkyrobot/yuri/internal/aws"
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	prefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	upStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	downStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// IsTTY returns true if the given file is a terminal.
func IsTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// FormatSize returns a human-readable size string.
func FormatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.1f TB", float64(bytes)/float64(TB))
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// ListObjects writes an S3 listing to w.
// Piped output is one key per line, or tab-separated key, size, class and
// timestamp with long. On a terminal, long output is aligned columns.
func ListObjects(w io.Writer, objects []aws.ObjectInfo, long bool, tty bool) {
	switch {
	case !long:
		for _, obj := range objects {
			if tty && obj.IsPrefix {
				fmt.Fprintln(w, prefixStyle.Render(obj.Key))
				continue
			}
			fmt.Fprintln(w, obj.Key)
		}

	case !tty:
		for _, obj := range objects {
			if obj.IsPrefix {
				fmt.Fprintf(w, "%s\t-\tPREFIX\t-\n", obj.Key)
			} else {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", obj.Key, obj.Size, obj.StorageClass, formatTime(obj.LastModified))
			}
		}

	default:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, obj := range objects {
			if obj.IsPrefix {
				fmt.Fprintf(tw, "PRE\t-\t-\t%s\n", obj.Key)
			} else {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					obj.StorageClass,
					FormatSize(obj.Size),
					formatDate(obj.LastModified),
					obj.Key,
				)
			}
		}
		tw.Flush()
	}
}

// FormatStat writes object metadata to w.
func FormatStat(w io.Writer, obj *aws.ObjectInfo, tty bool) {
	f := newFields(w, tty)
	f.add("key", obj.Key)
	if tty {
		f.add("size", fmt.Sprintf("%s (%d bytes)", FormatSize(obj.Size), obj.Size))
	} else {
		f.add("size", fmt.Sprint(obj.Size))
	}
	f.add("class", obj.StorageClass)
	f.add("modified", formatTime(obj.LastModified))
	f.add("type", obj.ContentType)
	f.add("etag", obj.ETag)
	if obj.RestoreStatus != aws.RestoreNone {
		f.add("restore", string(obj.RestoreStatus))
	}
	if !obj.RestoreExpiry.IsZero() {
		f.add("expires", formatTime(obj.RestoreExpiry))
	}
	f.flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.DateOnly)
}
