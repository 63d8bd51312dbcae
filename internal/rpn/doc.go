// Package rpn evaluates reverse Polish notation expressions over mpreal and
// mpcomplex values. It is the calculator front end of the mpcalc command.
//
// Operators pop their operands as movable temporaries, so a chain such as
// "1 2 + 3 +" reuses the storage of intermediate results instead of
// allocating a new value per step. A numeric literal consumed directly by a
// binary operator is not pushed at all: it is handed to the operation as a
// foreign operand through the evaluator's scratch pool.
package rpn
