package internal

import "io"
import "errors"
import "compress/gzip"

// creating a reusable buffer doesn't make much sense because
// then we will unnecessary keep a tempBuff, and the cost of
// parsing exceeds the cost of allocating <2KiB each time that
// it's needed

type ParsingBuffer struct {
	TempBuff []byte // size 1024, for temporary reads immediately copied to 'bytes'
	gzipReader *gzip.Reader
	FileType string

	Bytes []byte
	Index int // index of processed data within 'bytes'. unprocessed data == len(bytes) - index
	eof bool
}

func (self *ParsingBuffer) NewError(details string) error {
	return errors.New(self.FileType + " parsing error: " + details)
}

func (self *ParsingBuffer) InitBuffers() {
	self.TempBuff = make([]byte, 1024)
	self.Bytes    = make([]byte, 0, 1024)
	self.Index = 0
	self.eof = false
}

func (self *ParsingBuffer) InitGzipReader(reader io.Reader) error {
	var err error
	self.gzipReader, err = gzip.NewReader(reader)
	return err
}

func (self *ParsingBuffer) EnsureEOF() error {
	for !self.eof {
		err := self.readMore()
		if err != nil { return err }
	}
	if len(self.Bytes) > self.Index {
		return errors.New("file continues beyond the expected end")
	}
	return nil
}

// utility function called to read more data
func (self *ParsingBuffer) readMore() error {
	for retries := 0; retries < 3; retries++ {
		// read and process read bytes
		n, err := self.gzipReader.Read(self.TempBuff)
		if n > 0 {
			self.Bytes = GrowSliceByN(self.Bytes, n)
			if len(self.Bytes) > MaxFontDataSize {
				return self.NewError("font data size exceeds limit")
			}
			k := copy(self.Bytes[len(self.Bytes) - n : ], self.TempBuff[ : n])
			if k != n { panic("broken code") }
		}

		// handle errors
		if err == io.EOF {
			self.eof = true
			return nil
		} else if err != nil {
			return err
		}

		// return if we have read something
		if n != 0 { return nil }
	}

	// fallback error case if repeated reads still don't lead us anywhere
	return self.NewError("repeated empty reads")
}

func (self *ParsingBuffer) readUpTo(newIndex int) error {
	if newIndex <= self.Index { panic("readUpTo() misuse") }
	for len(self.Bytes) < newIndex {
		if self.eof {
			return self.NewError("premature end of file (or font offsets are wrong)")
		}
		err := self.readMore()
		if err != nil { return err }
	}
	self.Index = newIndex
	return nil
}

func (self *ParsingBuffer) AdvanceBytes(n int) error {
	if n == 0 { return nil }
	if n < 0 { panic("AdvanceBytes(N) where N < 0") }
	return self.readUpTo(self.Index + n)
}

func (self *ParsingBuffer) ReadUint32() (uint32, error) {
	index := self.Index
	err := self.readUpTo(index + 4)
	if err != nil { return 0, err }
	return DecodeUint32LE(self.Bytes[index : ]), nil
}

func (self *ParsingBuffer) ReadUint16() (uint16, error) {
	index := self.Index
	err := self.readUpTo(index + 2)
	if err != nil { return 0, err }
	return DecodeUint16LE(self.Bytes[index : ]), nil
}

func (self *ParsingBuffer) ReadUint8() (uint8, error) {
	index := self.Index
	err := self.readUpTo(index + 1)
	if err != nil { return 0, err }
	return self.Bytes[index], nil
}
