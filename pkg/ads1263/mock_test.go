package ads1263

import (
	"time"
)

// mockTransport is a scripted Transport. ReadByte pops from the reads queue,
// falling back to defaultRead once the queue drains; every write, line
// change, and delay is recorded for assertions.
type mockTransport struct {
	reads       []byte
	defaultRead byte

	written   []byte
	csEvents  []bool
	rstEvents []bool
	delays    []time.Duration

	readErr    error
	writeErr   error
	waitErr    error
	waitCalls  int
	closeCalls int
}

func (m *mockTransport) SetRST(high bool) error {
	m.rstEvents = append(m.rstEvents, high)
	return nil
}

func (m *mockTransport) SetCS(high bool) error {
	m.csEvents = append(m.csEvents, high)
	return nil
}

func (m *mockTransport) WriteByte(b byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.written = append(m.written, b)
	return nil
}

func (m *mockTransport) ReadByte() (byte, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	if len(m.reads) == 0 {
		return m.defaultRead, nil
	}
	b := m.reads[0]
	m.reads = m.reads[1:]
	return b, nil
}

func (m *mockTransport) ReadDRDY() (bool, error) {
	return false, nil
}

func (m *mockTransport) Delay(d time.Duration) {
	m.delays = append(m.delays, d)
}

func (m *mockTransport) WaitDRDY() error {
	m.waitCalls++
	return m.waitErr
}

func (m *mockTransport) WaitDRDYTimeout(time.Duration) error {
	m.waitCalls++
	return m.waitErr
}

func (m *mockTransport) Close() error {
	m.closeCalls++
	return nil
}

var _ Transport = (*mockTransport)(nil)

// countByte counts occurrences of b in the recorded write stream.
func (m *mockTransport) countByte(b byte) int {
	n := 0
	for _, w := range m.written {
		if w == b {
			n++
		}
	}
	return n
}
