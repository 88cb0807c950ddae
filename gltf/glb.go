// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
)

// GLB header.
type glbHeader [3]uint32

// Indices in glbHeader.
const (
	headerMagic   = 0
	headerVersion = 1
	headerLength  = 2
)

// GLB chunk.
type (
	glbChunk     [2]uint32
	glbChunkData []byte
)

// Indices in glbChunk.
const (
	chunkLength = 0
	chunkType   = 1
	// Then payload (glbChunkData).
)

const (
	// glbHeader[headerMagic].
	magic = 0x46546c67

	// glbChunk[chunkType].
	typeJSON = 0x4e4f534a
	typeBIN  = 0x004e4942
)

// IsGLB returns whether r refers to a binary glTF (version 2).
// It assumes that r was positioned accordingly.
func IsGLB(r io.Reader) bool {
	_, ok := readHeader(r)
	return ok
}

func readHeader(r io.Reader) (h glbHeader, ok bool) {
	err := binary.Read(r, binary.LittleEndian, h[:])
	switch {
	case err != nil, h[headerMagic] != magic, h[headerVersion] != 2:
		return h, false
	default:
		return h, true
	}
}

// SeekJSON seeks into r until it finds the beginning
// of the JSON string.
// If successful, it returns the length of the chunk.
// r must refer to an unread GLB blob.
func SeekJSON(r io.Reader) (n int, err error) {
	n, _, err = seekJSON(r)
	return
}

// seekJSON is like SeekJSON but also returns the number of
// bytes of the blob that remain after the JSON chunk.
func seekJSON(r io.Reader) (n int, rem uint32, err error) {
	h, ok := readHeader(r)
	if !ok {
		err = errors.New("gltf: not a GLB blob")
		return
	}
	var c glbChunk
	err = binary.Read(r, binary.LittleEndian, c[:])
	switch {
	case err != nil:
	case c[chunkLength] == 0 || c[chunkType] != typeJSON:
		err = errors.New("gltf: invalid GLB chunk")
	case h[headerLength] < 12+8 || c[chunkLength] > h[headerLength]-12-8:
		err = errors.New("gltf: GLB chunk exceeds blob length")
	default:
		n = int(c[chunkLength])
		rem = h[headerLength] - 12 - 8 - c[chunkLength]
	}
	return
}

// pad4 appends pad to b until its length is a multiple of 4.
func pad4(b []byte, pad byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, pad)
	}
	return b
}

// EncodeGLB encodes gltf and bin into w as a GLB blob.
// The first buffer of gltf, if any, must describe bin
// and have no URI.
func EncodeGLB(w io.Writer, gltf *GLTF, bin []byte) error {
	if len(gltf.Buffers) > 0 && gltf.Buffers[0].URI != "" {
		return errors.New("gltf: GLB buffer must not have a URI")
	}
	js, err := json.Marshal(gltf)
	if err != nil {
		return err
	}
	js = pad4(js, ' ')
	n := 12 + 8 + len(js)
	if len(bin) > 0 {
		bin = pad4(append([]byte(nil), bin...), 0)
		n += 8 + len(bin)
	}
	var buf bytes.Buffer
	buf.Grow(n)
	binary.Write(&buf, binary.LittleEndian, glbHeader{magic, 2, uint32(n)})
	binary.Write(&buf, binary.LittleEndian, glbChunk{uint32(len(js)), typeJSON})
	buf.Write(js)
	if len(bin) > 0 {
		binary.Write(&buf, binary.LittleEndian, glbChunk{uint32(len(bin)), typeBIN})
		buf.Write(bin)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// DecodeGLB decodes a GLB blob from r.
// It returns the glTF and the contents of the BIN chunk,
// which is nil if the blob has none.
func DecodeGLB(r io.Reader) (*GLTF, []byte, error) {
	n, rem, err := seekJSON(r)
	if err != nil {
		return nil, nil, err
	}
	js := make([]byte, n)
	if _, err = io.ReadFull(r, js); err != nil {
		return nil, nil, err
	}
	gltf, err := Decode(bytes.NewReader(js))
	if err != nil {
		return nil, nil, err
	}
	var c glbChunk
	switch err = binary.Read(r, binary.LittleEndian, c[:]); {
	case err == io.EOF:
		return gltf, nil, nil
	case err != nil:
		return nil, nil, err
	case c[chunkType] != typeBIN:
		return nil, nil, errors.New("gltf: invalid GLB chunk")
	case rem < 8 || c[chunkLength] > rem-8:
		return nil, nil, errors.New("gltf: GLB chunk exceeds blob length")
	}
	bin := make(glbChunkData, c[chunkLength])
	if _, err = io.ReadFull(r, bin); err != nil {
		return nil, nil, err
	}
	return gltf, bin, nil
}
