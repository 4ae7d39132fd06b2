package retrieval

import "math"

// Okapi BM25 parameters. Negative IDF values (terms present in more than half
// the corpus) are floored to epsilon * average IDF so common terms still
// contribute a small positive signal.
const (
	bm25K1      = 1.5
	bm25B       = 0.75
	bm25Epsilon = 0.25
)

// bm25 holds Okapi BM25 statistics over a tokenized corpus. The model is
// built per retrieval call from the candidate texts, not from a global index.
type bm25 struct {
	corpusSize int
	avgDocLen  float64
	docLens    []int
	termFreqs  []map[string]int
	idf        map[string]float64
}

func newBM25(corpus [][]string) *bm25 {
	m := &bm25{
		corpusSize: len(corpus),
		docLens:    make([]int, len(corpus)),
		termFreqs:  make([]map[string]int, len(corpus)),
		idf:        make(map[string]float64),
	}

	docFreq := make(map[string]int)
	totalLen := 0
	for i, doc := range corpus {
		m.docLens[i] = len(doc)
		totalLen += len(doc)

		freqs := make(map[string]int, len(doc))
		for _, term := range doc {
			freqs[term]++
		}
		m.termFreqs[i] = freqs
		for term := range freqs {
			docFreq[term]++
		}
	}
	if m.corpusSize > 0 {
		m.avgDocLen = float64(totalLen) / float64(m.corpusSize)
	}

	var idfSum float64
	var negative []string
	for term, df := range docFreq {
		idf := math.Log(float64(m.corpusSize)-float64(df)+0.5) - math.Log(float64(df)+0.5)
		m.idf[term] = idf
		idfSum += idf
		if idf < 0 {
			negative = append(negative, term)
		}
	}
	if len(m.idf) > 0 {
		floor := bm25Epsilon * idfSum / float64(len(m.idf))
		for _, term := range negative {
			m.idf[term] = floor
		}
	}
	return m
}

// Scores returns one BM25 score per corpus document for the tokenized query.
// Indices match the corpus passed to newBM25.
func (m *bm25) Scores(query []string) []float64 {
	scores := make([]float64, m.corpusSize)
	if m.avgDocLen == 0 {
		return scores
	}
	for _, term := range query {
		idf, ok := m.idf[term]
		if !ok {
			continue
		}
		for i := 0; i < m.corpusSize; i++ {
			tf := float64(m.termFreqs[i][term])
			if tf == 0 {
				continue
			}
			norm := bm25K1 * (1 - bm25B + bm25B*float64(m.docLens[i])/m.avgDocLen)
			scores[i] += idf * tf * (bm25K1 + 1) / (tf + norm)
		}
	}
	return scores
}
