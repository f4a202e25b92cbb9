// Package models defines the athlete roster schema (athletes and clubs).
package models
