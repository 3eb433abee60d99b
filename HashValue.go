package boxworld

type HashValue uint64

const hashSeed = HashValue(0x9E3779B97F4A7C15)

// mixes both ids into one key. The mix is a bijection of (a<<32 | b), so
// two different pairs never share a key.
func hashPair(a, b BodyID) HashValue {
	h := HashValue(uint32(a))<<32 | HashValue(uint32(b))
	h ^= hashSeed
	h ^= h >> 30
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 27
	h *= 0x94D049BB133111EB
	h ^= h >> 31
	return h
}

// orders a pair so that the lower id comes first.
func newPair(a, b *Body) (*Body, *Body) {
	if a.id > b.id {
		return b, a
	}
	return a, b
}
