package llm

import "context"

// MockProvider permite tests sin llamar a un LLM real; guarda el último
// request recibido para poder inspeccionar el prompt ensamblado.
type MockProvider struct {
	Response string
	Err      error
	LastReq  Request
	Calls    int
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (string, error) {
	m.LastReq = req
	m.Calls++
	return m.Response, m.Err
}
