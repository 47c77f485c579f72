package treebank

import "strings"

// Variants returns sig and its fallback keys in the fixed priority order:
// blank synset_offset first, then frame_id, then verb_class_id, then upos,
// and finally the bare-lemma key. Each entry after the first drops one more
// field than the last, so callers can walk the slice and stop at the first
// hit.
func (sig SemanticSignature) Variants() []string {
	full := sig
	out := []string{full.key()}

	woSynset := full
	woSynset.SynsetOffset = ""
	out = append(out, woSynset.key())

	woFrame := woSynset
	woFrame.FrameID = ""
	out = append(out, woFrame.key())

	woClass := woFrame
	woClass.VerbClassID = ""
	out = append(out, woClass.key())

	woPOS := woClass
	woPOS.UPos = 0 // UPosX
	out = append(out, woPOS.key())

	bareLemma := SemanticSignature{Lemma: strings.ToLower(sig.Lemma)}
	out = append(out, bareLemma.key())

	return dedupeStrings(out)
}

func (sig SemanticSignature) key() string {
	return strings.Join([]string{
		strings.ToLower(sig.Lemma),
		sig.UPos.String(),
		sig.VerbClassID,
		sig.FrameID,
		sig.SynsetOffset,
	}, "\x1f")
}

func dedupeStrings(ss []string) []string {
	seen := make(map[string]bool, len(ss))
	var out []string
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
