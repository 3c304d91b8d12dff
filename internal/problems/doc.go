// Package problems provides built-in nonlinear problems for continuation.
//
// Each problem implements [continuation.ExtendedProblem] over []float64 and
// carries its own canonical starting point on the branch:
//
//   - [Sine]: f(u, lambda) = sin(u) - lambda, one fold at lambda = 1
//   - [Circle]: f(u, lambda) = u² + lambda² - 1, closed branch with two folds
//   - [Bratu]: 1-D Gelfand-Bratu boundary value problem, fold near
//     lambda ≈ 3.514
//
// The scalar problems are useful for exercising fold traversal cheaply; the
// Bratu problem exercises a real vector unknown with a tridiagonal Jacobian.
package problems
