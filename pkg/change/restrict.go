package change

import (
	"sort"

	"github.com/texere-dev/edit/pkg/text"
)

// Restrict rebuilds cs so every range in keep — [from, to) pairs in the
// document cs was built against — survives untouched no matter what cs
// would otherwise do to it there, while the rest of the document follows
// cs exactly. It underlies a changeFilter provider that answers with an
// allowed-range list rather than a plain veto: keep names the spans of
// the proposed edit that get reverted, and the edit still applies
// everywhere else.
//
// keep ranges may overlap or repeat; they're clipped to [0, cs.Length())
// and merged before use. oldDoc must be the document cs.Length() was
// computed against.
func Restrict(cs *ChangeSet, oldDoc *text.Text, keep [][2]int) (*ChangeSet, error) {
	l := cs.Length()
	newRunes := []rune(cs.Apply(oldDoc).String())
	desc := cs.Desc()

	bounds := map[int]bool{0: true, l: true}
	clipped := make([][2]int, 0, len(keep))
	for _, k := range keep {
		a, b := k[0], k[1]
		if a < 0 {
			a = 0
		}
		if b > l {
			b = l
		}
		if a >= b {
			continue
		}
		clipped = append(clipped, [2]int{a, b})
		bounds[a] = true
		bounds[b] = true
	}
	sort.Slice(clipped, func(i, j int) bool { return clipped[i][0] < clipped[j][0] })

	protected := func(pos int) bool {
		for _, k := range clipped {
			if pos >= k[0] && pos < k[1] {
				return true
			}
		}
		return false
	}

	bs := make([]int, 0, len(bounds))
	for b := range bounds {
		bs = append(bs, b)
	}
	sort.Ints(bs)

	var specs []Spec
	for i := 0; i+1 < len(bs); i++ {
		from, to := bs[i], bs[i+1]
		if from >= to || protected(from) {
			continue
		}
		a := desc.MapPos(from, -1, ModeSimple)
		b := desc.MapPos(to, 1, ModeSimple)
		if a < 0 {
			a = 0
		}
		if b < 0 {
			b = 0
		}
		if b > len(newRunes) {
			b = len(newRunes)
		}
		if a > b {
			a = b
		}
		specs = append(specs, Spec{From: from, To: to, Insert: string(newRunes[a:b])})
	}
	return Of(specs, l, false)
}
