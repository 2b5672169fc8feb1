package wmint

import (
	"math/rand"
	"sort"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func naivePoints(vals []uint64, lb, rb, vlb, vrb uint64) []Point {
	var res []Point
	for p := lb; p <= rb && p < uint64(len(vals)); p++ {
		if vals[p] >= vlb && vals[p] <= vrb {
			res = append(res, Point{Pos: p, Val: vals[p]})
		}
	}
	return res
}

func byPos(points []Point) []Point {
	res := append([]Point(nil), points...)
	sort.Slice(res, func(a, b int) bool { return res[a].Pos < res[b].Pos })
	return res
}

func TestRangeSearch2D(t *testing.T) {
	src := []uint64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3}
	Convey("Given the sequence 3 1 4 1 5 9 2 6 5 3", t, func() {
		wm := mustBuild(t, src, 4)
		Convey("Counting and reporting agree on the seed query", func() {
			So(wm.CountRangeSearch2D(0, 9, 3, 5), ShouldEqual, 5)
			cnt, points := wm.RangeSearch2D(0, 9, 3, 5, true)
			So(cnt, ShouldEqual, 5)
			So(byPos(points), ShouldResemble, []Point{
				{Pos: 0, Val: 3},
				{Pos: 2, Val: 4},
				{Pos: 4, Val: 5},
				{Pos: 8, Val: 5},
				{Pos: 9, Val: 3},
			})
		})
		Convey("report=false only counts", func() {
			cnt, points := wm.RangeSearch2D(0, 9, 3, 5, false)
			So(cnt, ShouldEqual, 5)
			So(points, ShouldBeNil)
		})
		Convey("An inverted value range yields nothing", func() {
			cnt, points := wm.RangeSearch2D(0, 9, 5, 3, true)
			So(cnt, ShouldEqual, 0)
			So(points, ShouldBeNil)
			So(wm.CountRangeSearch2D(0, 9, 5, 3), ShouldEqual, 0)
		})
		Convey("Value bounds above the alphabet are clamped", func() {
			So(wm.CountRangeSearch2D(0, 9, 0, 1<<20), ShouldEqual, 10)
			So(wm.CountRangeSearch2D(0, 9, 7, 1<<20), ShouldEqual, 1)
			cnt, _ := wm.RangeSearch2D(0, 9, 7, 1<<20, true)
			So(cnt, ShouldEqual, 1)
		})
	})
	Convey("On random data count, report and a linear scan agree", t, func() {
		rnd := rand.New(rand.NewSource(6))
		vals := make([]uint64, 400)
		for i := range vals {
			vals[i] = uint64(rnd.Intn(200))
		}
		wm := mustBuild(t, vals, 0)
		for trial := 0; trial < 1000; trial++ {
			lb := uint64(rnd.Intn(400))
			rb := lb + uint64(rnd.Intn(400-int(lb)))
			vlb := uint64(rnd.Intn(220))
			vrb := vlb + uint64(rnd.Intn(100))
			want := naivePoints(vals, lb, rb, vlb, vrb)
			cnt, points := wm.RangeSearch2D(lb, rb, vlb, vrb, true)
			So(cnt, ShouldEqual, uint64(len(want)))
			So(wm.CountRangeSearch2D(lb, rb, vlb, vrb), ShouldEqual, cnt)
			if len(want) > 0 {
				So(byPos(points), ShouldResemble, want)
			} else {
				So(points, ShouldBeNil)
			}
		}
	})
}
