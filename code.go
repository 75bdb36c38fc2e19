package main

import (
	"math/rand"
	"strings"
	"time"
)

// Uppercase, with 0/O/1/I dropped so codes survive being read aloud.
var codeLetters = strings.Split("23456789ABCDEFGHJKLMNPQRSTUVWXYZ", "")

const codeLength = 6

func GenerateRandomCode() string {
	code := ""
	s := rand.NewSource(time.Now().UnixNano())
	r := rand.New(s)
	for i := 0; i < codeLength; i++ {
		index := r.Intn(len(codeLetters))
		code += codeLetters[index]
	}
	return code
}
