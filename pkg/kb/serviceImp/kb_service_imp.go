// Package serviceImp stores user-supplied reference material (competitor
// pages, articles, notes) and retrieves the most relevant chunks to enrich
// plan generation prompts.
package serviceImp

import (
	"math"
	"sort"
	"strings"

	"webplanner/entities"
	"webplanner/pkg/kb/embedder"
	"webplanner/pkg/kb/repository"
)

type Svc struct {
	r   repository.KBRepository
	emb *embedder.Client
}

func New(r repository.KBRepository, e *embedder.Client) *Svc { return &Svc{r: r, emb: e} }

func chunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = 1000
	}
	parts := []string{}
	cur := strings.Builder{}
	count := 0
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if count >= maxRunes && r == '\n' {
			parts = append(parts, cur.String())
			cur.Reset()
			count = 0
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

func (s *Svc) UpsertDocument(title, tags, text, sourceURL string) (*entities.ResearchDoc, int, error) {
	d := &entities.ResearchDoc{Title: title, Tags: tags, SourceURL: sourceURL}
	if err := s.r.CreateDoc(d); err != nil {
		return nil, 0, err
	}

	chs := chunkText(text, 1000)
	if len(chs) == 0 {
		return d, 0, nil
	}

	var embs [][]float32
	if s.emb != nil {
		var err error
		embs, err = s.emb.Embed(chs)
		if err != nil {
			// degrade gracefully: keep chunks with empty embeddings,
			// keyword search still works
			embs = nil
		}
	}

	rows := make([]entities.ResearchChunk, len(chs))
	for i := range chs {
		var embBytes []byte
		if embs != nil && i < len(embs) {
			embBytes = embedder.FloatsToBytes(embs[i])
		}
		rows[i] = entities.ResearchChunk{
			DocID: d.DocID,
			Ord:   i,
			Text:  chs[i],

			Embedding: embBytes,
		}
	}

	if err := s.r.BulkInsertChunks(rows); err != nil {
		return nil, 0, err
	}
	return d, len(rows), nil
}

func (s *Svc) Search(query string, k int) ([]entities.ResearchChunk, error) {
	q := strings.TrimSpace(query)
	if q == "" || k <= 0 {
		return nil, nil
	}

	var qvec []float32
	if s.emb != nil {
		if vec, err := s.emb.Embed([]string{q}); err == nil && len(vec) > 0 {
			qvec = vec[0]
		}
	}

	chunks, err := s.r.AllChunks()
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	type scored struct {
		ch entities.ResearchChunk
		sc float64
	}
	scoredList := make([]scored, 0, len(chunks))

	if len(qvec) > 0 {
		for _, ch := range chunks {
			chVec := embedder.BytesToFloats(ch.Embedding)
			if len(chVec) == 0 || len(chVec) != len(qvec) {
				continue
			}
			sc := cosine(qvec, chVec)
			if sc == 0 {
				continue
			}
			scoredList = append(scoredList, scored{ch: ch, sc: sc})
		}
	} else {
		// keyword fallback: count query terms present in the chunk
		terms := strings.Fields(strings.ToLower(q))
		for _, ch := range chunks {
			low := strings.ToLower(ch.Text)
			score := 0.0
			for _, t := range terms {
				if strings.Contains(low, t) {
					score++
				}
			}
			if score > 0 {
				scoredList = append(scoredList, scored{ch: ch, sc: score})
			}
		}
	}

	if len(scoredList) == 0 {
		return nil, nil
	}
	sort.Slice(scoredList, func(i, j int) bool { return scoredList[i].sc > scoredList[j].sc })

	if k > len(scoredList) {
		k = len(scoredList)
	}
	out := make([]entities.ResearchChunk, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, scoredList[i].ch)
	}
	return out, nil
}

func (s *Svc) ListDocs() ([]entities.ResearchDoc, error) { return s.r.ListDocs() }

func (s *Svc) DocsMeta(ids []uint) (map[uint]entities.ResearchDoc, error) {
	return s.r.DocsByIDs(ids)
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := 0; i < len(a) && i < len(b); i++ {
		dot += float64(a[i] * b[i])
		na += float64(a[i] * a[i])
		nb += float64(b[i] * b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
