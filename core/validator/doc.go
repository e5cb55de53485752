// Package validator wraps go-playground/validator for request parameter checks.
//
// Errors name fields by their query, json, param or header tag so messages
// match what the client sent.
package validator
