package merge

import (
	"fmt"
	"iter"
)

// Triple pairs up to three versions of one unit for a three-way merge. A nil
// field means the key is absent from that input. At least one field is
// always set, and all set fields share the same key.
type Triple[U any] struct {
	Base   *U
	Local  *U
	Remote *U
}

// Pair is the two-way analogue of Triple, produced for diffing.
type Pair[U any] struct {
	Old *U
	New *U
}

type item3[U any] struct {
	base, local, remote *U
	done                bool
}

type item2[U any] struct {
	old, new *U
	done     bool
}

// Match3 pairs the units of three inputs by key and yields one Triple per
// distinct key. The order preserves local order for keys present in local,
// inserts keys new to remote at the earliest position that does not reorder
// local, and falls back to base order for keys present only in base.
//
// A key marked deleted in local but live in remote is placed as if it were
// absent from local, so a resurrection in remote wins placement.
//
// Inputs must not repeat a key within one sequence; that precondition is
// asserted. The yielded sequence is finite and single-pass.
func Match3[U any, K comparable](base, local, remote iter.Seq[U], key func(U) K, deleted func(U) bool) iter.Seq[Triple[U]] {
	if deleted == nil {
		deleted = func(U) bool { return false }
	}
	return func(yield func(Triple[U]) bool) {
		items := make(map[K]*item3[U])
		slot := func(k K) *item3[U] {
			it := items[k]
			if it == nil {
				it = &item3[U]{}
				items[k] = it
			}
			return it
		}
		for u := range base {
			it := slot(key(u))
			if it.base != nil {
				panic(fmt.Sprintf("merge: duplicate key %v in base input", key(u)))
			}
			it.base = &u
		}
		for u := range local {
			it := slot(key(u))
			if it.local != nil {
				panic(fmt.Sprintf("merge: duplicate key %v in local input", key(u)))
			}
			it.local = &u
		}
		for u := range remote {
			it := slot(key(u))
			if it.remote != nil {
				panic(fmt.Sprintf("merge: duplicate key %v in remote input", key(u)))
			}
			it.remote = &u
		}

		bw := NewWalker(base)
		lw := NewWalker(local)
		rw := NewWalker(remote)
		defer bw.Stop()
		defer lw.Stop()
		defer rw.Stop()

		notLocal := func(it *item3[U]) bool {
			return it.local == nil ||
				(deleted(*it.local) && it.remote != nil && !deleted(*it.remote))
		}
		emit := func(it *item3[U]) bool {
			if it.done {
				panic("merge: matcher emitted the same slot twice")
			}
			it.done = true
			return yield(Triple[U]{Base: it.base, Local: it.local, Remote: it.remote})
		}

		for lw.Valid() || rw.Valid() {
			// Remote units missing from local go out as soon as
			// everything before them has been emitted; everything else
			// follows local order.
			if rw.Valid() && notLocal(items[key(rw.Current())]) {
				if !emit(items[key(rw.Current())]) {
					return
				}
				rw.Advance()
			} else if lw.Valid() {
				if !emit(items[key(lw.Current())]) {
					return
				}
				lw.Advance()
			}
			for rw.Valid() && items[key(rw.Current())].done {
				rw.Advance()
			}
			for lw.Valid() && items[key(lw.Current())].done {
				lw.Advance()
			}
		}

		// Keys deleted in both heads but present historically keep base
		// order.
		for bw.Valid() {
			it := items[key(bw.Current())]
			if !it.done {
				if !emit(it) {
					return
				}
			}
			bw.Advance()
		}

		if bw.Valid() || lw.Valid() || rw.Valid() {
			panic("merge: matcher finished with unconsumed input")
		}
		undone := 0
		for _, it := range items {
			if !it.done {
				undone++
			}
		}
		if undone > 0 {
			panic(fmt.Sprintf("merge: matcher left %d keys unmatched", undone))
		}
	}
}

// Match2 is the two-way specialisation of Match3 used for diffing: it pairs
// old against new with the same ordering contract and no base-drain phase.
func Match2[U any, K comparable](old, new iter.Seq[U], key func(U) K, deleted func(U) bool) iter.Seq[Pair[U]] {
	if deleted == nil {
		deleted = func(U) bool { return false }
	}
	return func(yield func(Pair[U]) bool) {
		items := make(map[K]*item2[U])
		slot := func(k K) *item2[U] {
			it := items[k]
			if it == nil {
				it = &item2[U]{}
				items[k] = it
			}
			return it
		}
		for u := range old {
			it := slot(key(u))
			if it.old != nil {
				panic(fmt.Sprintf("merge: duplicate key %v in old input", key(u)))
			}
			it.old = &u
		}
		for u := range new {
			it := slot(key(u))
			if it.new != nil {
				panic(fmt.Sprintf("merge: duplicate key %v in new input", key(u)))
			}
			it.new = &u
		}

		ow := NewWalker(old)
		nw := NewWalker(new)
		defer ow.Stop()
		defer nw.Stop()

		notOld := func(it *item2[U]) bool {
			return it.old == nil ||
				(deleted(*it.old) && it.new != nil && !deleted(*it.new))
		}
		emit := func(it *item2[U]) bool {
			if it.done {
				panic("merge: matcher emitted the same slot twice")
			}
			it.done = true
			return yield(Pair[U]{Old: it.old, New: it.new})
		}

		for ow.Valid() || nw.Valid() {
			if nw.Valid() && notOld(items[key(nw.Current())]) {
				if !emit(items[key(nw.Current())]) {
					return
				}
				nw.Advance()
			} else if ow.Valid() {
				if !emit(items[key(ow.Current())]) {
					return
				}
				ow.Advance()
			}
			for nw.Valid() && items[key(nw.Current())].done {
				nw.Advance()
			}
			for ow.Valid() && items[key(ow.Current())].done {
				ow.Advance()
			}
		}

		if ow.Valid() || nw.Valid() {
			panic("merge: matcher finished with unconsumed input")
		}
		for _, it := range items {
			if !it.done {
				panic("merge: matcher left keys unmatched")
			}
		}
	}
}
