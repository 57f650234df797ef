package img

import (
	"testing"

	"github.com/effevee/weather-station/pbm"
)

// Every icon the renderer can ask for must be embedded and decodable.
func TestAssetsComplete(t *testing.T) {
	names := []string{
		"01@2x.pbm", "02@2x.pbm", "03@2x.pbm", "04@2x.pbm",
		"09@2x.pbm", "10@2x.pbm", "11@2x.pbm", "13@2x.pbm", "50@2x.pbm",
		"temperature.pbm", "humidity.pbm", "pressure.pbm", "luminance.pbm",
	}
	for _, name := range names {
		f, err := FS.Open(name)
		if err != nil {
			t.Errorf("open %s: %v", name, err)
			continue
		}
		img, err := pbm.Decode(f)
		f.Close()
		if err != nil {
			t.Errorf("decode %s: %v", name, err)
			continue
		}
		if img.Width <= 0 || img.Height <= 0 {
			t.Errorf("%s: bad dimensions %dx%d", name, img.Width, img.Height)
		}
	}
}
