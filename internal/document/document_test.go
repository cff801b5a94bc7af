package document

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectPath(x0, y0, x1, y1 float64) Path {
	return Path{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
}

func TestBounds_Empty(t *testing.T) {
	_, ok := New().Bounds()
	require.False(t, ok)
}

func TestBounds_AcrossLayers(t *testing.T) {
	d := New()
	d.Add(1, rectPath(10, 10, 30, 50))
	d.Add(3, Path{{-5, 20}, {0, 60}})

	r, ok := d.Bounds()
	require.True(t, ok)
	assert.Equal(t, Rect{MinX: -5, MinY: 10, MaxX: 30, MaxY: 60}, r)
	assert.Equal(t, []int{1, 3}, d.LayerIDs())
	assert.Equal(t, 2, d.Len())
}

func TestAdd_IgnoresEmptyPath(t *testing.T) {
	d := New()
	d.Add(1, nil)
	require.Equal(t, 0, d.Len())
	require.Empty(t, d.LayerIDs())
}

func TestTranslate_IsExact(t *testing.T) {
	d := New()
	d.Add(1, rectPath(10, 10, 30, 50))
	d.Translate(30, 20)

	r, _ := d.Bounds()
	require.Equal(t, Rect{MinX: 40, MinY: 30, MaxX: 60, MaxY: 70}, r)
}

func TestTransforms(t *testing.T) {
	d := New()
	d.Add(1, Path{{1, 0}, {2, 0}})

	d.Scale(2, 3)
	assert.Equal(t, Path{{2, 0}, {4, 0}}, d.Paths(1)[0])

	d.Rotate(90)
	p := d.Paths(1)[0]
	assert.InDelta(t, 0, p[1][0], 1e-9)
	assert.InDelta(t, 4, p[1][1], 1e-9)

	d.Transform(mgl64.Translate2D(1, 1))
	p = d.Paths(1)[0]
	assert.InDelta(t, 1, p[1][0], 1e-9)
	assert.InDelta(t, 5, p[1][1], 1e-9)
}

func TestMergeLines(t *testing.T) {
	d := New()
	d.Add(1, Path{{0, 0}, {10, 0}})
	d.Add(1, Path{{20, 0}, {10.05, 0}}) // reversed continuation
	d.Add(1, Path{{50, 50}, {60, 60}})

	d.MergeLines(0.1)

	paths := d.Paths(1)
	require.Len(t, paths, 2)
	assert.Equal(t, Path{{0, 0}, {10, 0}, {20, 0}}, paths[0])
}

func TestSortLines_ReducesTravel(t *testing.T) {
	d := New()
	d.Add(1, Path{{100, 100}, {110, 100}})
	d.Add(1, Path{{0, 5}, {10, 5}})
	d.Add(1, Path{{60, 50}, {12, 6}})
	before := d.PenUpDistance()

	d.SortLines()

	require.Less(t, d.PenUpDistance(), before)
	paths := d.Paths(1)
	assert.Equal(t, mgl64.Vec2{0, 5}, paths[0][0])
	assert.Equal(t, mgl64.Vec2{12, 6}, paths[1][0], "second path should be flipped")
}

func TestPageSizeByName(t *testing.T) {
	s, err := PageSizeByName("A4")
	require.NoError(t, err)
	assert.InDelta(t, 793.7, s.Width, 0.1)
	assert.InDelta(t, 1122.5, s.Height, 0.1)

	l := s.Landscape()
	assert.Equal(t, s.Width, l.Height)

	_, err = PageSizeByName("napkin")
	require.Error(t, err)
}

func TestWriteSVG(t *testing.T) {
	d := New()
	d.SetPageSize(Size{Width: 100, Height: 50})
	d.Add(2, Path{{0, 0}, {10, 10.5}})
	d.Add(1, Path{{3, 4}})

	var buf bytes.Buffer
	require.NoError(t, d.WriteSVG(&buf))

	out := buf.String()
	assert.Contains(t, out, `width="100"`)
	assert.Contains(t, out, `height="50"`)
	assert.Contains(t, out, `viewBox="0 0 100 50"`)
	assert.Contains(t, out, `inkscape:groupmode="layer"`)
	assert.Contains(t, out, `<path d="M0,0 L10,10.5"`)
	assert.Contains(t, out, `<path d="M3,4 L3,4"`)
	assert.Contains(t, out, "</svg>")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(`id="layer1"`)), bytes.Index(buf.Bytes(), []byte(`id="layer2"`)))
}

func TestWriteSVG_FitsGeometryWithoutPage(t *testing.T) {
	testCases := []struct {
		name    string
		path    Path
		width   string
		height  string
		viewBox string
	}{
		{name: "negative only", path: Path{{-50, -50}, {-10, -10}}, width: `width="40"`, height: `height="40"`, viewBox: `viewBox="-50 -50 40 40"`},
		{name: "straddling origin", path: Path{{-5, -2}, {15, 8}}, width: `width="20"`, height: `height="10"`, viewBox: `viewBox="-5 -2 20 10"`},
		{name: "positive offset", path: Path{{10, 20}, {30, 25}}, width: `width="20"`, height: `height="5"`, viewBox: `viewBox="10 20 20 5"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := New()
			d.Add(1, tc.path)

			var buf bytes.Buffer
			require.NoError(t, d.WriteSVG(&buf))

			out := buf.String()
			assert.Contains(t, out, tc.width)
			assert.Contains(t, out, tc.height)
			assert.Contains(t, out, tc.viewBox)
		})
	}
}
