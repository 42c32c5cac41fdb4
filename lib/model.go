package lib

import "fmt"

// Model is the set of top-level bindings a program introduces.
type Model struct {
	Variables map[string]*Variable
	Functions map[string]*Function
}

type Variable struct {
	Name  string
	Value Expression
}

type Function struct {
	Name       string
	Parameters []string
	Body       Expression
}

type ModelBuilder struct {
	model Model
}

func NewModelBuilder() *ModelBuilder {
	return &ModelBuilder{
		model: Model{
			Variables: map[string]*Variable{},
			Functions: map[string]*Function{},
		},
	}
}

func (m *ModelBuilder) handleStmt(stmt Expression) error {
	switch s := stmt.(type) {
	case Assignment:
		return m.handleAssignment(s)
	case FunctionDefinition:
		return m.handleFunctionDefinition(s)
	default:
		// Plain expressions don't bind anything
		return nil
	}
}

func (m *ModelBuilder) handleAssignment(a Assignment) error {
	// Rebinding a variable is allowed, the last assignment wins
	m.model.Variables[a.Name] = &Variable{
		Name:  a.Name,
		Value: a.Value,
	}
	return nil
}

func (m *ModelBuilder) handleFunctionDefinition(fd FunctionDefinition) error {
	_, exists := m.model.Functions[fd.Name]
	if exists {
		return fmt.Errorf("Function named '%s' is already defined", fd.Name)
	}

	fn := &Function{
		Name:       fd.Name,
		Parameters: []string{},
		Body:       fd.Body,
	}
	for _, param := range fd.Parameters {
		for _, existing := range fn.Parameters {
			if existing == param.Name {
				return fmt.Errorf(
					"Function '%s' declares the parameter '%s' more than once",
					fd.Name,
					param.Name,
				)
			}
		}
		fn.Parameters = append(fn.Parameters, param.Name)
	}

	m.model.Functions[fn.Name] = fn
	return nil
}

func ModelFromProgram(prog Program) (Model, error) {
	builder := NewModelBuilder()
	for _, stmt := range prog.Statements {
		err := builder.handleStmt(stmt)
		if err != nil {
			return Model{}, err
		}
	}
	return builder.model, nil
}
