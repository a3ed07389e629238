// Package dsl 提供基于 CEL (Common Expression Language) 的规则求值。
// CEL 类型安全、高性能、线程安全，表达式编译一次即可反复求值。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// getCELEnv 获取或创建 CEL 环境，定义可用变量。
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("product", cel.DynType),
			cel.Variable("user", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译好的布尔表达式，可以安全地被多个 goroutine 并发求值。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：product.price < 500.0 / product.rating >= 4.0
//   - 相等：product.category == "Electronics"
//   - 逻辑：product.brand == "TechPro" && product.price < 100.0
//   - 包含：product.name.contains("Pro")
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式。语法错误在这里暴露，不会拖到逐条求值时。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式文本。
func (p *Program) Expr() string { return p.expr }

// EvalBool 对给定输入求值，表达式必须产出布尔。
func (p *Program) EvalBool(input map[string]any) (bool, error) {
	out, _, err := p.prg.Eval(input)
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", p.expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q must return boolean, got %T", p.expr, out.Value())
	}
	return result, nil
}
