package document

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

const (
	svgNS      = "http://www.w3.org/2000/svg"
	inkscapeNS = "http://www.inkscape.org/namespaces/inkscape"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// viewBox returns the SVG view box: the page when there is one, otherwise
// the bounds of the geometry.
func (d *Document) viewBox() Rect {
	if size, ok := d.PageSize(); ok {
		return Rect{MaxX: size.Width, MaxY: size.Height}
	}
	r, _ := d.Bounds()
	return r
}

// WriteSVG serializes the document as a plotter-friendly SVG, one Inkscape
// layer group per layer. Without a page size the view box is fitted to the
// geometry.
func (d *Document) WriteSVG(w io.Writer) error {
	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)

	vb := d.viewBox()
	canvas.Startraw(
		fmt.Sprintf(`width="%s"`, num(vb.Width())),
		fmt.Sprintf(`height="%s"`, num(vb.Height())),
		fmt.Sprintf(`viewBox="%s %s %s %s"`, num(vb.MinX), num(vb.MinY), num(vb.Width()), num(vb.Height())),
		fmt.Sprintf(`xmlns="%s"`, svgNS),
		fmt.Sprintf(`xmlns:inkscape="%s"`, inkscapeNS),
	)

	for _, id := range d.LayerIDs() {
		canvas.Group(
			`inkscape:groupmode="layer"`,
			fmt.Sprintf(`inkscape:label="%d"`, id),
			fmt.Sprintf(`id="layer%d"`, id),
			`fill="none"`,
			`stroke="black"`,
		)
		for _, p := range d.layers[id] {
			canvas.Path(pathData(p))
		}
		canvas.Gend()
	}
	canvas.End()

	return bw.Flush()
}

// pathData renders a polyline as path data. A lone point becomes a
// zero-length segment so that it still plots.
func pathData(p Path) string {
	if len(p) == 1 {
		p = Path{p[0], p[0]}
	}
	cmds := make([]string, len(p))
	for i, pt := range p {
		op := "L"
		if i == 0 {
			op = "M"
		}
		cmds[i] = op + num(pt[0]) + "," + num(pt[1])
	}
	return strings.Join(cmds, " ")
}
