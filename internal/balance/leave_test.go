package balance

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/username/kimbal/pkg/dateutil"
	"go.uber.org/zap"
)

func logPeriod(t *testing.T) dateutil.Period {
	t.Helper()
	p, err := dateutil.NewPeriod(
		time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 11, 30, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestParseLeaveSource(t *testing.T) {
	if src := ParseLeaveSource("12"); !src.explicit || src.count != 12 {
		t.Errorf("ParseLeaveSource(\"12\") = %+v, want explicit count 12", src)
	}
	if src := ParseLeaveSource("vacation.csv"); src.explicit || src.file != "vacation.csv" {
		t.Errorf("ParseLeaveSource(\"vacation.csv\") = %+v, want file source", src)
	}
}

func TestLeaveSource_ResolveExplicit(t *testing.T) {
	days, file, err := LeaveDays(7).Resolve(".", saxony2022(t), logPeriod(t), zap.NewNop())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if days != 7 || file != "" {
		t.Errorf("Resolve() = (%d, %q), want (7, \"\")", days, file)
	}
}

func TestLeaveSource_ResolveMissingFile(t *testing.T) {
	// Recoverable: warning only, zero days
	days, file, err := LeaveFile("vacation.csv").Resolve(t.TempDir(), saxony2022(t), logPeriod(t), zap.NewNop())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if days != 0 || file != "" {
		t.Errorf("Resolve() = (%d, %q), want (0, \"\")", days, file)
	}
}

func TestCountLeave(t *testing.T) {
	holidays := saxony2022(t)
	period := logPeriod(t)

	tests := []struct {
		name string
		rows string
		want int
	}{
		{
			name: "single date inside period",
			rows: "18.05.2022,doctor\n",
			want: 1,
		},
		{
			name: "single date outside period",
			rows: "24.12.2022,christmas\n",
			want: 0,
		},
		{
			name: "weekday range counts all days",
			rows: "02.05.2022-06.05.2022,spring break\n",
			want: 5,
		},
		{
			name: "range with spaces around hyphen",
			rows: "02.05.2022 - 06.05.2022,spring break\n",
			want: 5,
		},
		{
			name: "weekend days inside range not counted",
			rows: "13.05.2022-16.05.2022,long weekend\n",
			want: 2,
		},
		{
			name: "holiday inside range not counted",
			rows: "03.10.2022-07.10.2022,autumn break\n",
			want: 4,
		},
		{
			name: "range clipped to period",
			rows: "28.11.2022-09.12.2022,winter leave\n",
			want: 3,
		},
		{
			name: "rows accumulate",
			rows: "18.05.2022,doctor\n02.05.2022-06.05.2022,spring break\n24.12.2022,ignored\n",
			want: 6,
		},
		{
			name: "empty file",
			rows: "",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := countLeave(strings.NewReader("date,reason\n"+tt.rows), holidays, period)
			if err != nil {
				t.Fatalf("countLeave() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("countLeave() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountLeave_Errors(t *testing.T) {
	holidays := saxony2022(t)
	period := logPeriod(t)

	tests := []struct {
		name string
		csv  string
	}{
		{"missing date column", "day,reason\n18.05.2022,doctor\n"},
		{"malformed date", "date,reason\nsoon,doctor\n"},
		{"malformed range bound", "date,reason\n02.05.2022-someday,break\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := countLeave(strings.NewReader(tt.csv), holidays, period); err == nil {
				t.Error("countLeave() expected error")
			}
		})
	}
}

func TestLeaveSource_ResolveFile(t *testing.T) {
	dir := t.TempDir()
	content := "date,reason\n18.05.2022,doctor\n02.05.2022-06.05.2022,spring break\n"
	if err := os.WriteFile(filepath.Join(dir, "vacation.csv"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	days, file, err := LeaveFile("vacation.csv").Resolve(dir, saxony2022(t), logPeriod(t), zap.NewNop())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if days != 6 {
		t.Errorf("Resolve() days = %d, want 6", days)
	}
	if file != filepath.Join(dir, "vacation.csv") {
		t.Errorf("Resolve() file = %q", file)
	}
}
