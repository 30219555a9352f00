package entities

import (
	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/mem"
)

type Memory struct {
	RAM RAM `json:"ram"`
}

type RAM struct {
	Free  float64 `json:"free"`
	Used  float64 `json:"used"`
	Total float64 `json:"total"`
}

type ReadableMemory struct {
	Free  string `json:"free"`
	Used  string `json:"used"`
	Total string `json:"total"`
}

func (m *RAM) Readable() *ReadableMemory {
	return &ReadableMemory{
		Free:  readableMemory(m.Free),
		Used:  readableMemory(m.Used),
		Total: readableMemory(m.Total),
	}
}

func readableMemory(bytes float64) string {
	return humanize.IBytes(uint64(bytes))
}

// CurrentMemory returns the memory usage of the host system, as seen by the
// process rather than the generation backend.
func CurrentMemory() (*Memory, error) {
	vmem, err := mem.VirtualMemory()
	if err != nil {
		return nil, err
	}

	return &Memory{
		RAM: RAM{
			Free:  float64(vmem.Free),
			Used:  float64(vmem.Used),
			Total: float64(vmem.Total),
		},
	}, nil
}
