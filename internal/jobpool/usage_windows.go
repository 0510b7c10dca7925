package jobpool

// UsageExamples documents common invocations for --help-usage.
const UsageExamples = `Example usage:

# Start <command> after setting the pool to provide as many jobs
# as available CPUs (the default)
poolctl <command>

# Start <command> with a fixed number of job slots.
poolctl -j10 <command>

# Disable the feature with a non-positive count. This is equivalent
# to running <command> directly.
poolctl -j0 <command>

# Use a specific semaphore name
poolctl --name=my_build_jobs <command>

# Setup the pool then start a new interactive PowerShell
# session, print MAKEFLAGS value, build stuff, then exit.
poolctl powershell.exe
$env:MAKEFLAGS
... build stuff ...
exit
`
