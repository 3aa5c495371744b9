package palette

import (
	"fmt"
	"slices"
	"sync"

	mandel "github.com/marben/mandel_hues"
)

// HueList is the single owner of an ordered hue list and its derived Table.
// Every mutation renumbers the hues 1..N and rebuilds the table before readers see either.
type HueList struct {
	m     sync.RWMutex
	hues  []mandel.Hue
	table Table
}

// NewHueList normalizes and numbers hues in the given order.
func NewHueList(hues ...mandel.Hue) *HueList {
	l := &HueList{}
	l.hues = make([]mandel.Hue, 0, len(hues))
	for _, h := range hues {
		l.hues = append(l.hues, normalize(h))
	}
	l.commit()
	return l
}

// normalize makes the color authoritative: after it Color is set and Hex is empty.
func normalize(h mandel.Hue) mandel.Hue {
	c := Resolve(h)
	return mandel.Hue{Num: h.Num, Color: &c}
}

// commit renumbers and rebuilds the table. Callers hold the write lock.
func (l *HueList) commit() Table {
	for i := range l.hues {
		l.hues[i].Num = i + 1
	}
	l.table = Build(l.hues)
	return l.table
}

// Len returns the number of hues.
func (l *HueList) Len() int {
	l.m.RLock()
	defer l.m.RUnlock()
	return len(l.hues)
}

// Hues returns a copy of the list.
func (l *HueList) Hues() []mandel.Hue {
	l.m.RLock()
	defer l.m.RUnlock()
	out := make([]mandel.Hue, len(l.hues))
	for i, h := range l.hues {
		c := *h.Color
		out[i] = mandel.Hue{Num: h.Num, Color: &c}
	}
	return out
}

// Table returns the current lookup table. The returned slice is shared and must not be modified.
func (l *HueList) Table() Table {
	l.m.RLock()
	defer l.m.RUnlock()
	return l.table
}

// Add appends h and returns the rebuilt table.
func (l *HueList) Add(h mandel.Hue) Table {
	l.m.Lock()
	defer l.m.Unlock()
	l.hues = append(l.hues, normalize(h))
	return l.commit()
}

// Insert places h so that it gets number num, 1 <= num <= Len()+1.
func (l *HueList) Insert(num int, h mandel.Hue) (Table, error) {
	l.m.Lock()
	defer l.m.Unlock()
	if num < 1 || num > len(l.hues)+1 {
		return nil, fmt.Errorf("%w: insert position %d of %d hues", mandel.ErrInvalidInput, num, len(l.hues))
	}
	l.hues = slices.Insert(l.hues, num-1, normalize(h))
	return l.commit(), nil
}

// Remove deletes hue num.
func (l *HueList) Remove(num int) (Table, error) {
	l.m.Lock()
	defer l.m.Unlock()
	if err := l.checkNum(num); err != nil {
		return nil, err
	}
	l.hues = slices.Delete(l.hues, num-1, num)
	return l.commit(), nil
}

// Move reorders hue from so that it ends up with number to.
func (l *HueList) Move(from, to int) (Table, error) {
	l.m.Lock()
	defer l.m.Unlock()
	if err := l.checkNum(from); err != nil {
		return nil, err
	}
	if err := l.checkNum(to); err != nil {
		return nil, err
	}
	h := l.hues[from-1]
	l.hues = slices.Delete(l.hues, from-1, from)
	l.hues = slices.Insert(l.hues, to-1, h)
	return l.commit(), nil
}

// Recolor changes the color of hue num.
func (l *HueList) Recolor(num int, c mandel.RGB) (Table, error) {
	l.m.Lock()
	defer l.m.Unlock()
	if err := l.checkNum(num); err != nil {
		return nil, err
	}
	l.hues[num-1] = mandel.Hue{Num: num, Color: &c}
	return l.commit(), nil
}

// Replace swaps the whole list, as when a project file is loaded.
func (l *HueList) Replace(hues []mandel.Hue) Table {
	l.m.Lock()
	defer l.m.Unlock()
	l.hues = l.hues[:0]
	for _, h := range hues {
		l.hues = append(l.hues, normalize(h))
	}
	return l.commit()
}

func (l *HueList) checkNum(num int) error {
	if num < 1 || num > len(l.hues) {
		return fmt.Errorf("%w: hue %d of %d", mandel.ErrInvalidInput, num, len(l.hues))
	}
	return nil
}
