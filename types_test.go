package story2pdf

import (
	"errors"
	"testing"
)

func TestPageSettingsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{
			name:    "nil settings are valid (defaults apply)",
			page:    nil,
			wantErr: nil,
		},
		{
			name:    "defaults are valid",
			page:    DefaultPageSettings(),
			wantErr: nil,
		},
		{
			name: "uppercase size accepted",
			page: &PageSettings{Size: "LETTER", Orientation: "PORTRAIT",
				MarginVertical: 1, MarginHorizontal: 1},
			wantErr: nil,
		},
		{
			name: "unknown size",
			page: &PageSettings{Size: "tabloid", Orientation: OrientationPortrait,
				MarginVertical: 1, MarginHorizontal: 1},
			wantErr: ErrInvalidPageSize,
		},
		{
			name: "empty size",
			page: &PageSettings{Orientation: OrientationPortrait,
				MarginVertical: 1, MarginHorizontal: 1},
			wantErr: ErrInvalidPageSize,
		},
		{
			name: "unknown orientation",
			page: &PageSettings{Size: PageSizeA4, Orientation: "sideways",
				MarginVertical: 1, MarginHorizontal: 1},
			wantErr: ErrInvalidOrientation,
		},
		{
			name: "vertical margin below minimum",
			page: &PageSettings{Size: PageSizeA4, Orientation: OrientationPortrait,
				MarginVertical: 0.4, MarginHorizontal: 1},
			wantErr: ErrInvalidMargin,
		},
		{
			name: "horizontal margin above maximum",
			page: &PageSettings{Size: PageSizeA4, Orientation: OrientationPortrait,
				MarginVertical: 1, MarginHorizontal: 8.1},
			wantErr: ErrInvalidMargin,
		},
		{
			name: "margins at bounds",
			page: &PageSettings{Size: PageSizeA4, Orientation: OrientationPortrait,
				MarginVertical: MinMargin, MarginHorizontal: MaxMargin},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultPageSettings(t *testing.T) {
	t.Parallel()

	p := DefaultPageSettings()
	if p.Size != PageSizeA4 {
		t.Errorf("Size = %q, want %q", p.Size, PageSizeA4)
	}
	if p.Orientation != OrientationPortrait {
		t.Errorf("Orientation = %q, want %q", p.Orientation, OrientationPortrait)
	}
	if p.MarginVertical != DefaultMarginVertical {
		t.Errorf("MarginVertical = %v, want %v", p.MarginVertical, DefaultMarginVertical)
	}
	if p.MarginHorizontal != DefaultMarginHorizontal {
		t.Errorf("MarginHorizontal = %v, want %v", p.MarginHorizontal, DefaultMarginHorizontal)
	}
}
