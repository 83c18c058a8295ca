//go:build !unix

package mmap

func mapAnon(int) ([]byte, error) {
	return nil, ErrUnsupported
}

func munmap([]byte) error {
	return ErrUnsupported
}

func advise([]byte, Advice) error {
	return nil
}
