package fst

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// FST is a frozen byte-labeled finite-state transducer, traversed
// directly off its serialized byte image through a BytesReader cursor.
// - Keys are sequences of byte labels; accepted keys end in a final node.
// - Outputs accumulate along the path through the Outputs monoid; final
//   nodes contribute one additional final output.
//
// Node record at image offset off:
//   - flags byte: bit 0 set if the node is final
//   - if final: uvarint final output
//   - uvarint number of outgoing arcs
//   - arcs in ascending label order, each:
//     label byte, uvarint arc output, uvarint target node offset
//
// Offsets are absolute indices into the image. Children are serialized
// before their parents, so arc targets always point backwards; the root
// is the last node emitted.
type FST struct {
	image []byte
	root  uint64
	outs  Outputs

	rootFinal    bool
	rootFinalOut Output
}

const nodeFinal = 0x01

// Output is an accumulated transducer output. Outputs are non-negative;
// the word-class dictionaries built on top fit in a single byte.
type Output uint64

// Outputs is the output algebra of a transducer: a monoid with identity
// NoOutput and an associative Add.
type Outputs interface {
	NoOutput() Output
	Add(a, b Output) Output
}

// SumOutputs combines outputs by integer addition, with identity 0.
type SumOutputs struct{}

func (SumOutputs) NoOutput() Output       { return 0 }
func (SumOutputs) Add(a, b Output) Output { return a + b }

// Arc is the per-call traversal cursor. An Arc must not be shared
// between concurrent walks; allocate a fresh one per call.
type Arc struct {
	Label  byte
	Output Output
	Target uint64

	final    bool
	finalOut Output
}

// IsFinal reports whether the arc's target node accepts the key read so
// far.
func (a *Arc) IsFinal() bool { return a.final }

// FinalOutput is the target node's final output contribution. It is the
// monoid identity for non-final nodes.
func (a *Arc) FinalOutput() Output { return a.finalOut }

// Outputs returns the transducer's output algebra.
func (f *FST) Outputs() Outputs { return f.outs }

// Size returns the length of the serialized image in bytes.
func (f *FST) Size() int { return len(f.image) }

// BytesReader returns a fresh random-access cursor over the image.
// Readers hold mutable position state and must not be shared between
// concurrent walks.
func (f *FST) BytesReader() *BytesReader {
	return &BytesReader{image: f.image}
}

// FirstArc resets arc to the root of the transducer and returns it.
func (f *FST) FirstArc(arc *Arc) *Arc {
	*arc = Arc{
		Target:   f.root,
		Output:   f.outs.NoOutput(),
		final:    f.rootFinal,
		finalOut: f.rootFinalOut,
	}
	return arc
}

// FindTargetArc follows the transition labeled label out of the node
// follow points at. On a match it fills arc (which may alias follow)
// and returns true; a missing transition returns (false, nil). A
// non-nil error means the image itself could not be read and the
// transducer must be considered corrupt.
func (f *FST) FindTargetArc(label byte, follow *Arc, arc *Arc, in *BytesReader) (bool, error) {
	if err := in.SetPosition(follow.Target); err != nil {
		return false, err
	}
	flags, err := in.ReadByte()
	if err != nil {
		return false, err
	}
	if flags&nodeFinal != 0 {
		if _, err := in.ReadUvarint(); err != nil { // skip final output
			return false, err
		}
	}
	narcs, err := in.ReadUvarint()
	if err != nil {
		return false, err
	}
	for i := uint64(0); i < narcs; i++ {
		lb, err := in.ReadByte()
		if err != nil {
			return false, err
		}
		out, err := in.ReadUvarint()
		if err != nil {
			return false, err
		}
		target, err := in.ReadUvarint()
		if err != nil {
			return false, err
		}
		if lb == label {
			arc.Label = lb
			arc.Output = Output(out)
			arc.Target = target
			return true, f.readFinality(arc, in)
		}
		if lb > label { // arcs are sorted by label
			return false, nil
		}
	}
	return false, nil
}

// readFinality peeks at the target node header to fill the arc's
// finality fields.
func (f *FST) readFinality(arc *Arc, in *BytesReader) error {
	if err := in.SetPosition(arc.Target); err != nil {
		return err
	}
	flags, err := in.ReadByte()
	if err != nil {
		return err
	}
	arc.final = flags&nodeFinal != 0
	arc.finalOut = f.outs.NoOutput()
	if arc.final {
		v, err := in.ReadUvarint()
		if err != nil {
			return err
		}
		arc.finalOut = Output(v)
	}
	return nil
}

// BytesReader is a random-access cursor over a serialized transducer
// image. Obtain readers from (*FST).BytesReader; the zero value is not
// usable.
type BytesReader struct {
	image []byte
	pos   int
}

// SetPosition moves the cursor to an absolute image offset.
func (r *BytesReader) SetPosition(pos uint64) error {
	if pos >= uint64(len(r.image)) {
		return fmt.Errorf("fst: position %d outside image of %d bytes", pos, len(r.image))
	}
	r.pos = int(pos)
	return nil
}

// ReadByte reads one byte and advances the cursor.
func (r *BytesReader) ReadByte() (byte, error) {
	if r.pos >= len(r.image) {
		return 0, fmt.Errorf("fst: read past end of image at %d", r.pos)
	}
	b := r.image[r.pos]
	r.pos++
	return b, nil
}

// ReadUvarint reads an unsigned varint and advances the cursor.
func (r *BytesReader) ReadUvarint() (uint64, error) {
	v, n := binary.Uvarint(r.image[r.pos:])
	if n <= 0 {
		return 0, fmt.Errorf("fst: truncated uvarint at %d", r.pos)
	}
	r.pos += n
	return v, nil
}

const (
	saveMagic   = "koFT"
	saveVersion = 1
)

// Save writes the transducer to w as a self-delimiting blob:
// magic, version byte, uvarint root offset, uvarint image length, image.
func (f *FST) Save(w io.Writer) error {
	header := make([]byte, 0, len(saveMagic)+1+2*binary.MaxVarintLen64)
	header = append(header, saveMagic...)
	header = append(header, saveVersion)
	header = binary.AppendUvarint(header, f.root)
	header = binary.AppendUvarint(header, uint64(len(f.image)))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("fst: save failed: %w", err)
	}
	if _, err := w.Write(f.image); err != nil {
		return fmt.Errorf("fst: save failed: %w", err)
	}
	return nil
}

// Read restores a transducer previously written with Save. It consumes
// exactly the blob's bytes from r, so further data may follow in the
// same stream.
func Read(r io.Reader, outs Outputs) (*FST, error) {
	var m [len(saveMagic) + 1]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return nil, fmt.Errorf("fst: load failed: %w", err)
	}
	if string(m[:len(saveMagic)]) != saveMagic {
		return nil, fmt.Errorf("fst: bad magic %q", m[:len(saveMagic)])
	}
	if m[len(saveMagic)] != saveVersion {
		return nil, fmt.Errorf("fst: unsupported version %d", m[len(saveMagic)])
	}
	br := byteReaderFor(r)
	root, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, fmt.Errorf("fst: load failed: %w", err)
	}
	size, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, fmt.Errorf("fst: load failed: %w", err)
	}
	image := make([]byte, size)
	if _, err := io.ReadFull(br, image); err != nil {
		return nil, fmt.Errorf("fst: load failed: %w", err)
	}
	return newFST(image, root, outs)
}

// Load restores a transducer from an in-memory blob written with Save.
func Load(data []byte, outs Outputs) (*FST, error) {
	return Read(bytes.NewReader(data), outs)
}

type byteReader interface {
	io.Reader
	io.ByteReader
}

func byteReaderFor(r io.Reader) byteReader {
	if br, ok := r.(byteReader); ok {
		return br
	}
	return &plainByteReader{r: r}
}

type plainByteReader struct {
	r io.Reader
}

func (p *plainByteReader) Read(buf []byte) (int, error) { return p.r.Read(buf) }

func (p *plainByteReader) ReadByte() (byte, error) {
	var one [1]byte
	if _, err := io.ReadFull(p.r, one[:]); err != nil {
		return 0, err
	}
	return one[0], nil
}

// newFST wraps a freshly built or loaded image, caching root finality
// for FirstArc.
func newFST(image []byte, root uint64, outs Outputs) (*FST, error) {
	f := &FST{image: image, root: root, outs: outs}
	in := f.BytesReader()
	if err := in.SetPosition(root); err != nil {
		return nil, err
	}
	flags, err := in.ReadByte()
	if err != nil {
		return nil, err
	}
	f.rootFinal = flags&nodeFinal != 0
	f.rootFinalOut = outs.NoOutput()
	if f.rootFinal {
		v, err := in.ReadUvarint()
		if err != nil {
			return nil, err
		}
		f.rootFinalOut = Output(v)
	}
	return f, nil
}
