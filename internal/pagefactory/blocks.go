package pagefactory

// BlockRef is one resolved nested container. Two slots holding the same block
// type are distinct blocks.
type BlockRef struct {
	// Title is the label of the slot the block was found in.
	Title string
	// Path addresses the slot from the search root.
	Path  string
	Value any
}

// ResolveBlocks finds the blocks addressed by path inside root.
//
// A multi-segment path ("A->B->C") is an explicit address: every hop must
// match a direct child block. A single-segment path searches the whole block
// tree below root, so it may return several unrelated blocks sharing the
// title. With firstOnly the search stops at the first hit.
//
// An empty result is not an error; only model defects are reported.
func (e *Engine) ResolveBlocks(root any, path string, firstOnly bool) ([]BlockRef, error) {
	chain := SplitPath(path)
	found, err := e.findBlocks(root, chain, "", len(chain) > 1, firstOnly)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("resolved blocks", "path", path, "found", len(found), "firstOnly", firstOnly)
	return found, nil
}

// FindBlock returns the first block addressed by path.
func (e *Engine) FindBlock(root any, path string) (BlockRef, error) {
	found, err := e.ResolveBlocks(root, path, true)
	if err != nil {
		return BlockRef{}, err
	}

	if len(found) == 0 {
		return BlockRef{}, &NotFoundError{
			Kind:      KindBlock,
			Title:     path,
			Container: e.DisplayTitle(root),
		}
	}

	return found[0], nil
}

// exact is set for multi-segment paths and stays set down to the last hop.
func (e *Engine) findBlocks(c any, chain []string, prefix string, exact, firstOnly bool) ([]BlockRef, error) {
	def, err := e.Definition(c)
	if err != nil {
		return nil, err
	}

	var found []BlockRef
	for i := range def.Bindings {
		b := &def.Bindings[i]
		if b.Kind != KindBlock {
			continue
		}

		matched := e.matches(b, chain[0])
		if !matched && exact {
			continue
		}

		v, err := b.value(c, def.Title)
		if err != nil {
			return nil, err
		}
		if isNil(v) {
			e.logger.Debug("skipping empty block slot", "block", e.Label(b), "container", def.Title)
			continue
		}

		slot := e.Label(b)
		if prefix != "" {
			slot = JoinPath(prefix, slot)
		}

		switch {
		case matched && len(chain) == 1:
			found = append(found, BlockRef{Title: e.Label(b), Path: slot, Value: v})

		case matched:
			sub, err := e.findBlocks(v, chain[1:], slot, exact, firstOnly)
			if err != nil {
				return nil, err
			}
			found = append(found, sub...)

		default:
			// Single-segment lookups search through non-matching blocks.
			sub, err := e.findBlocks(v, chain, slot, false, firstOnly)
			if err != nil {
				return nil, err
			}
			found = append(found, sub...)
		}

		if firstOnly && len(found) > 0 {
			return found[:1], nil
		}
	}

	return found, nil
}
