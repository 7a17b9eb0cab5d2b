package result

// BrokenSet tracks every URL classified as broken.
type BrokenSet struct {
	urls map[string]struct{}
}

// NewBrokenSet creates a set sized for roughly expected URLs.
func NewBrokenSet(expected int) *BrokenSet {
	return &BrokenSet{urls: make(map[string]struct{}, expected)}
}

// Add marks url as broken.
func (b *BrokenSet) Add(url string) {
	b.urls[url] = struct{}{}
}

// Contains reports whether url was marked broken.
func (b *BrokenSet) Contains(url string) bool {
	_, ok := b.urls[url]
	return ok
}

// Len returns the number of distinct broken URLs.
func (b *BrokenSet) Len() int {
	return len(b.urls)
}
