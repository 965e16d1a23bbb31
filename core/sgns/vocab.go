package sgns

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

const (
	UnknownToken       = "<unk>"
	UnknownId    int32 = 0
)

// Vocabulary maintains the bi-directional mapping between tokens and
// ids.  Ids are dense, assigned in the order tokens are first seen,
// and id 0 is reserved for UnknownToken.  A Vocabulary is built once
// from the training split and is read-only afterwards, so it can be
// shared by datasets of all splits.
type Vocabulary struct {
	Tokens []string
	ids    map[string]int32
}

func NewVocabulary() *Vocabulary {
	v := &Vocabulary{
		Tokens: make([]string, 0),
		ids:    make(map[string]int32),
	}
	v.Build([]string{UnknownToken})
	return v
}

// Build assigns the next id to each token not yet in the vocabulary.
func (v *Vocabulary) Build(tokens []string) {
	for _, t := range tokens {
		if _, ok := v.ids[t]; !ok {
			v.ids[t] = int32(len(v.Tokens))
			v.Tokens = append(v.Tokens, t)
		}
	}
}

// Len returns the number of distinct tokens, including UnknownToken.
func (v *Vocabulary) Len() int {
	return len(v.ids)
}

// Id returns the id of token.  If token is not in the vocabulary, it
// returns a negative value.
func (v *Vocabulary) Id(token string) int32 {
	if id, ok := v.ids[token]; ok {
		return id
	}
	return -1
}

// Token returns the token of id, or UnknownToken if no token has id.
func (v *Vocabulary) Token(id int32) string {
	if id < 0 || int(id) >= len(v.Tokens) {
		return UnknownToken
	}
	return v.Tokens[id]
}

// Encode never fails; tokens not in the vocabulary map to UnknownId.
func (v *Vocabulary) Encode(tokens []string) []int32 {
	ids := make([]int32, len(tokens))
	for i, t := range tokens {
		if id, ok := v.ids[t]; ok {
			ids[i] = id
		} else {
			ids[i] = UnknownId
		}
	}
	return ids
}

func (v *Vocabulary) Decode(ids []int32) []string {
	tokens := make([]string, len(ids))
	for i, id := range ids {
		tokens[i] = v.Token(id)
	}
	return tokens
}

// Save writes the token-to-id table as a flat JSON object.
func (v *Vocabulary) Save(w io.Writer) error {
	if e := json.NewEncoder(w).Encode(v.ids); e != nil {
		return errors.Wrap(e, "encoding vocabulary")
	}
	return nil
}

// Load replaces the content of v with the table read from r.  The
// table must map UnknownToken to UnknownId and assign every id in
// [0, len(table)) to exactly one token, as Save writes it.
func (v *Vocabulary) Load(r io.Reader) error {
	var table map[string]int64
	if e := json.NewDecoder(r).Decode(&table); e != nil {
		return errors.Wrap(e, "malformed vocabulary")
	}
	if id, ok := table[UnknownToken]; !ok || id != int64(UnknownId) {
		return errors.Errorf("malformed vocabulary: %s must map to %d",
			UnknownToken, UnknownId)
	}

	tokens := make([]string, len(table))
	filled := make([]bool, len(table))
	for t, id := range table {
		if id < 0 || id >= int64(len(table)) {
			return errors.Errorf("malformed vocabulary: id %d of %q out of [0, %d)",
				id, t, len(table))
		}
		if filled[id] {
			return errors.Errorf("malformed vocabulary: %q and %q share id %d",
				tokens[id], t, id)
		}
		tokens[id], filled[id] = t, true
	}

	v.Tokens = tokens
	v.ids = make(map[string]int32, len(table))
	for id, t := range tokens {
		v.ids[t] = int32(id)
	}
	return nil
}
