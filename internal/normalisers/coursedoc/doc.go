// Package coursedoc parses the course document format into a Course
// with chunked lesson content.
//
// The expected layout is a header followed by lesson blocks:
//
//	Course Title: Building Towards Computer Use
//	Course Link: https://example.com/course
//	Course Instructor: Colt Steele
//
//	Lesson 0: Introduction
//	Lesson Link: https://example.com/lesson-0
//	Welcome to the course...
//
//	Lesson 1: Getting Set Up
//	...
//
// A document with a title but no recognisable lesson markers is still
// accepted: its whole body becomes one implicit, unnumbered lesson.
// A document without a title is rejected.
package coursedoc
