package embedding

import "math"

// Cosine returns the cosine similarity of two vectors. Mismatched or empty
// vectors score zero instead of erroring; the caller treats that as "not
// similar".
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// meanPool averages the token vectors that the attention mask marks as real
// input, collapsing [tokens, dim] hidden state into one sentence vector.
func meanPool(hidden []float32, mask []int64, dim int) []float32 {
	vec := make([]float32, dim)
	if dim == 0 {
		return vec
	}

	count := 0
	for t := range mask {
		if mask[t] == 0 {
			continue
		}
		offset := t * dim
		if offset+dim > len(hidden) {
			break
		}
		for i := 0; i < dim; i++ {
			vec[i] += hidden[offset+i]
		}
		count++
	}

	if count == 0 {
		return vec
	}
	for i := range vec {
		vec[i] /= float32(count)
	}
	return vec
}

// l2Normalize scales the vector to unit length in place. Zero vectors are
// left untouched.
func l2Normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}

	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}
