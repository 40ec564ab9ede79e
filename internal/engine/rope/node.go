package rope

import "strings"

// Tree structure constants.
const (
	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// node is a node in the rope B+ tree.
// Leaf nodes (height == 0) contain text chunks; internal nodes contain
// child node references with per-child summaries for efficient seeking.
type node struct {
	height  uint8
	summary TextSummary

	children       []*node
	childSummaries []TextSummary

	chunks []Chunk
}

func newLeafNode() *node {
	return &node{
		height: 0,
		chunks: make([]Chunk, 0, MaxChunksPerLeaf),
	}
}

func newLeafNodeWithChunks(chunks []Chunk) *node {
	n := &node{
		height: 0,
		chunks: chunks,
	}
	n.recomputeSummary()
	return n
}

func newInternalNode(children []*node) *node {
	if len(children) == 0 {
		return newLeafNode()
	}

	height := children[0].height + 1
	summaries := make([]TextSummary, len(children))
	total := TextSummary{ASCII: true}
	for i, child := range children {
		summaries[i] = child.summary
		total = total.Add(child.summary)
	}

	return &node{
		height:         height,
		summary:        total,
		children:       children,
		childSummaries: summaries,
	}
}

func (n *node) isLeaf() bool {
	return n.height == 0
}

func (n *node) lenBytes() int {
	return n.summary.Bytes
}

func (n *node) lenChars() int {
	return n.summary.Chars
}

func (n *node) recomputeSummary() {
	n.summary = TextSummary{ASCII: true}
	if n.isLeaf() {
		for _, chunk := range n.chunks {
			n.summary = n.summary.Add(chunk.Summary())
		}
		return
	}
	n.childSummaries = make([]TextSummary, len(n.children))
	for i, child := range n.children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
}

func (n *node) clone() *node {
	if n.isLeaf() {
		chunks := make([]Chunk, len(n.chunks))
		copy(chunks, n.chunks)
		return &node{
			height:  0,
			summary: n.summary,
			chunks:  chunks,
		}
	}

	children := make([]*node, len(n.children))
	copy(children, n.children)
	summaries := make([]TextSummary, len(n.childSummaries))
	copy(summaries, n.childSummaries)

	return &node{
		height:         n.height,
		summary:        n.summary,
		children:       children,
		childSummaries: summaries,
	}
}

func (n *node) appendTo(sb *strings.Builder) {
	if n.isLeaf() {
		for _, chunk := range n.chunks {
			sb.WriteString(chunk.String())
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// textInRange extracts text in the byte range [start, end).
func (n *node) textInRange(start, end ByteOffset) string {
	if start >= end || start >= n.lenBytes() {
		return ""
	}
	if end > n.lenBytes() {
		end = n.lenBytes()
	}

	var sb strings.Builder
	sb.Grow(end - start)
	n.appendRange(&sb, start, end)
	return sb.String()
}

func (n *node) appendRange(sb *strings.Builder, start, end ByteOffset) {
	if start >= end {
		return
	}

	if n.isLeaf() {
		offset := 0
		for _, chunk := range n.chunks {
			chunkEnd := offset + chunk.Len()
			if chunkEnd <= start {
				offset = chunkEnd
				continue
			}
			if offset >= end {
				break
			}

			sliceStart := 0
			if start > offset {
				sliceStart = start - offset
			}
			sliceEnd := chunk.Len()
			if end < chunkEnd {
				sliceEnd = end - offset
			}

			sb.WriteString(chunk.String()[sliceStart:sliceEnd])
			offset = chunkEnd
		}
		return
	}

	offset := 0
	for i, child := range n.children {
		childLen := n.childSummaries[i].Bytes
		childEnd := offset + childLen
		if childEnd <= start {
			offset = childEnd
			continue
		}
		if offset >= end {
			break
		}

		childStart := 0
		if start > offset {
			childStart = start - offset
		}
		childEndAdj := childLen
		if end < childEnd {
			childEndAdj = end - offset
		}

		child.appendRange(sb, childStart, childEndAdj)
		offset = childEnd
	}
}

// charToByte converts a character index within this subtree to a byte
// offset, descending by per-child summaries.
func (n *node) charToByte(charIdx CharOffset) ByteOffset {
	if charIdx <= 0 {
		return 0
	}
	if charIdx >= n.lenChars() {
		return n.lenBytes()
	}

	// All-ASCII subtrees have identical byte and char indexes.
	if n.summary.ASCII {
		return charIdx
	}

	if n.isLeaf() {
		bytes := 0
		for _, chunk := range n.chunks {
			if charIdx < chunk.Chars() {
				return bytes + charToByteInString(chunk.String(), charIdx)
			}
			charIdx -= chunk.Chars()
			bytes += chunk.Len()
		}
		return bytes
	}

	bytes := 0
	for i, child := range n.children {
		sum := n.childSummaries[i]
		if charIdx < sum.Chars {
			return bytes + child.charToByte(charIdx)
		}
		charIdx -= sum.Chars
		bytes += sum.Bytes
	}
	return bytes
}

// byteToChar converts a byte offset within this subtree to a character
// index. Offsets inside a multi-byte rune round down.
func (n *node) byteToChar(byteIdx ByteOffset) CharOffset {
	if byteIdx <= 0 {
		return 0
	}
	if byteIdx >= n.lenBytes() {
		return n.lenChars()
	}

	if n.summary.ASCII {
		return byteIdx
	}

	if n.isLeaf() {
		chars := 0
		for _, chunk := range n.chunks {
			if byteIdx < chunk.Len() {
				return chars + byteToCharInString(chunk.String(), byteIdx)
			}
			byteIdx -= chunk.Len()
			chars += chunk.Chars()
		}
		return chars
	}

	chars := 0
	for i, child := range n.children {
		sum := n.childSummaries[i]
		if byteIdx < sum.Bytes {
			return chars + child.byteToChar(byteIdx)
		}
		byteIdx -= sum.Bytes
		chars += sum.Chars
	}
	return chars
}

// split splits the node at a byte offset.
// Left contains [0, offset), right contains [offset, end).
func (n *node) split(offset ByteOffset) (*node, *node) {
	if offset <= 0 {
		return newLeafNode(), n.clone()
	}
	if offset >= n.lenBytes() {
		return n.clone(), newLeafNode()
	}

	if n.isLeaf() {
		return n.splitLeaf(offset)
	}
	return n.splitInternal(offset)
}

func (n *node) splitLeaf(offset ByteOffset) (*node, *node) {
	var leftChunks, rightChunks []Chunk
	currentOffset := 0

	for _, chunk := range n.chunks {
		chunkLen := chunk.Len()
		switch {
		case currentOffset+chunkLen <= offset:
			leftChunks = append(leftChunks, chunk)
		case currentOffset >= offset:
			rightChunks = append(rightChunks, chunk)
		default:
			left, right := chunk.Split(offset - currentOffset)
			if !left.IsEmpty() {
				leftChunks = append(leftChunks, left)
			}
			if !right.IsEmpty() {
				rightChunks = append(rightChunks, right)
			}
		}
		currentOffset += chunkLen
	}

	return newLeafNodeWithChunks(leftChunks), newLeafNodeWithChunks(rightChunks)
}

func (n *node) splitInternal(offset ByteOffset) (*node, *node) {
	var leftChildren, rightChildren []*node
	currentOffset := 0

	for i, child := range n.children {
		childLen := n.childSummaries[i].Bytes
		switch {
		case currentOffset+childLen <= offset:
			leftChildren = append(leftChildren, child)
		case currentOffset >= offset:
			rightChildren = append(rightChildren, child)
		default:
			leftChild, rightChild := child.split(offset - currentOffset)
			if leftChild.lenBytes() > 0 {
				leftChildren = append(leftChildren, leftChild)
			}
			if rightChild.lenBytes() > 0 {
				rightChildren = append(rightChildren, rightChild)
			}
		}
		currentOffset += childLen
	}

	return buildNodeFromChildren(leftChildren), buildNodeFromChildren(rightChildren)
}

// buildNodeFromChildren creates a balanced tree from a list of nodes.
func buildNodeFromChildren(children []*node) *node {
	if len(children) == 0 {
		return newLeafNode()
	}
	if len(children) == 1 {
		return children[0]
	}
	if len(children) <= MaxChildren {
		return newInternalNode(children)
	}

	var parents []*node
	for i := 0; i < len(children); i += MaxChildren {
		end := i + MaxChildren
		if end > len(children) {
			end = len(children)
		}
		parents = append(parents, newInternalNode(children[i:end]))
	}
	return buildNodeFromChildren(parents)
}

// concatNodes concatenates two subtrees.
func concatNodes(left, right *node) *node {
	if left == nil || left.lenBytes() == 0 {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.lenBytes() == 0 {
		return left
	}

	if left.isLeaf() && right.isLeaf() {
		return concatLeaves(left, right)
	}

	// Bring to the same height by wrapping the shorter side.
	for left.height < right.height {
		left = newInternalNode([]*node{left})
	}
	for right.height < left.height {
		right = newInternalNode([]*node{right})
	}

	return mergeNodes(left, right)
}

func concatLeaves(left, right *node) *node {
	totalChunks := len(left.chunks) + len(right.chunks)
	if totalChunks <= MaxChunksPerLeaf {
		chunks := make([]Chunk, 0, totalChunks)
		chunks = append(chunks, left.chunks...)
		chunks = append(chunks, right.chunks...)
		return newLeafNodeWithChunks(chunks)
	}
	return newInternalNode([]*node{left.clone(), right.clone()})
}

func mergeNodes(left, right *node) *node {
	if left.isLeaf() {
		return concatLeaves(left, right)
	}

	allChildren := make([]*node, 0, len(left.children)+len(right.children))
	allChildren = append(allChildren, left.children...)
	allChildren = append(allChildren, right.children...)

	if len(allChildren) <= MaxChildren {
		return newInternalNode(allChildren)
	}
	return buildNodeFromChildren(allChildren)
}
